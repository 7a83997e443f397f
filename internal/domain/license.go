package domain

// StaticLicense is a License fixed at startup from configuration.
type StaticLicense struct {
	Premium bool
}

// IsPremium reports whether premium features are enabled.
func (l StaticLicense) IsPremium() bool {
	return l.Premium
}
