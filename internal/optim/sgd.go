package optim

import "github.com/born-ml/ninja/internal/matrix"

// SGD implements gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Batch, mini-batch and stochastic descent share this rule; only the number
// of examples behind each gradient differs.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	if err := sgd.Step(weights, grads); err != nil {
//	    return err
//	}
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// Step performs a single optimization step, param -= lr * grad for every
// pair. Shapes are checked for all pairs first, so a mismatch leaves every
// parameter untouched.
func (s *SGD) Step(params, grads []*matrix.Dense) error {
	if err := checkPairs(params, grads); err != nil {
		return err
	}
	for i, p := range params {
		pd := p.RawData()
		for j, g := range grads[i].RawData() {
			pd[j] -= s.lr * g
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
