package stackarena

import s "github.com/bnclabs/gosettings"

// Defaultsettings for arena construction.
//
// "capacity" (int64, default: DefaultCapacity)
//
//	Size of the arena in bytes.
//
// "alignment" (int64, default: DefaultAlignment)
//
//	Alignment of every allocation, must be a power of two.
//
// "zeroed" (bool, default: false)
//
//	Clear memory before handing it out.
func Defaultsettings() s.Settings {
	return s.Settings{
		"capacity":  int64(DefaultCapacity),
		"alignment": int64(DefaultAlignment),
		"zeroed":    false,
	}
}

// NewArenaFromSettings creates an arena from setts. Missing parameters are
// taken from Defaultsettings.
func NewArenaFromSettings(setts s.Settings) (*Arena, error) {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	a, err := NewArena(int(setts.Int64("capacity")), int(setts.Int64("alignment")))
	if err != nil {
		return nil, err
	}
	a.zeroed = setts.Bool("zeroed")
	return a, nil
}
