package domain

// Validator checks a value of type K.
// Apply returns an error when the value is rejected, which stops the chain.
type Validator[K any] interface {
	Apply(msg *K) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc[K any] func(msg *K) error

// Apply calls f(msg).
func (f ValidatorFunc[K]) Apply(msg *K) error {
	return f(msg)
}

// Validators applies a sequence of validators in order.
type Validators[K any] struct {
	Validators []Validator[K]
}

// Apply executes all validators in order on the given value.
// The first error is returned and the remaining validators are skipped.
func (v *Validators[K]) Apply(msg *K) error {
	for _, validator := range v.Validators {
		if err := validator.Apply(msg); err != nil {
			return err
		}
	}

	return nil
}

// WithValidators creates a validation chain.
//
//	chain := WithValidators[frame](checkHeader, checkChecksum)
//	err := chain.Apply(&f)
func WithValidators[K any](validators ...Validator[K]) *Validators[K] {
	return &Validators[K]{Validators: validators}
}
