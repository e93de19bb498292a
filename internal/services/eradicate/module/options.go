package module

import (
	"eradicate/internal/adapters/pyfile"
	"eradicate/internal/platform/config"
	"eradicate/internal/platform/term"
	"eradicate/internal/services/eradicate/domain"
)

// FromConfig extracts run Options from the ERADICATE_* environment
func FromConfig(cfg config.Conf) domain.Options {
	ec := cfg.Prefix("ERADICATE_")
	return domain.Options{
		InPlace:    ec.MayBool("IN_PLACE", false),
		Recursive:  ec.MayBool("RECURSIVE", false),
		Jobs:       ec.MayInt("JOBS", 1),
		Color:      ec.MayEnum("COLOR", term.ColorNever, term.Modes...),
		Extensions: ec.MayCSV("EXTENSIONS", pyfile.DefaultExtensions),
	}
}
