package config

// Overrides carries settings given explicitly on the command line.
// Nil fields were not set and leave lower-precedence values alone.
type Overrides struct {
	Dialect      *string
	Validation   *string
	Verification *string
	Optimize     *bool
	StrictMode   *bool
	EmitProof    *bool
}

// Resolve applies defaults, then the manifest (may be nil), then overrides.
func Resolve(m *Manifest, o Overrides) (Compile, error) {
	cfg := Default()
	if m != nil {
		if err := m.Apply(&cfg); err != nil {
			return Compile{}, err
		}
	}
	if o.Dialect != nil {
		d, err := ParseDialect(*o.Dialect)
		if err != nil {
			return Compile{}, err
		}
		cfg.TargetDialect = d
	}
	if o.Validation != nil {
		l, err := ParseValidationLevel(*o.Validation)
		if err != nil {
			return Compile{}, err
		}
		cfg.Validation = l
	}
	if o.Verification != nil {
		l, err := ParseVerificationLevel(*o.Verification)
		if err != nil {
			return Compile{}, err
		}
		cfg.Verification = l
	}
	if o.Optimize != nil {
		cfg.Optimize = *o.Optimize
	}
	if o.StrictMode != nil {
		cfg.StrictMode = *o.StrictMode
	}
	if o.EmitProof != nil {
		cfg.EmitProof = *o.EmitProof
	}
	return cfg, nil
}
