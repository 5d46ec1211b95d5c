package nn

import "errors"

// Sentinel errors returned by Network operations.
var (
	// ErrArchitecture indicates weight matrices or forward vectors that do not
	// describe a consistent layer chain.
	ErrArchitecture = errors.New("nn: inconsistent architecture")

	// ErrInputSize indicates an input vector whose length is not units[0].
	ErrInputSize = errors.New("nn: input size mismatch")

	// ErrTargetSize indicates a target vector whose length is not the output
	// layer size.
	ErrTargetSize = errors.New("nn: target size mismatch")

	// ErrBatchSize indicates an empty batch or inputs and targets of
	// different counts.
	ErrBatchSize = errors.New("nn: batch size mismatch")
)
