package modkit

import (
	"eradicate/internal/platform/config"
	"eradicate/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger // optional
	Cfg config.Conf
}
