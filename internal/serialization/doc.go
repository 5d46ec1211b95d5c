// Package serialization reads and writes networks in the plain-text model
// format.
//
//	Format Structure:
//	  num_layers=<L>
//	  layer_sizes=<s0> <s1> ... <s_{L-1}>
//	  w
//
//	  <row 0 of w[0], space-separated>
//	  ...
//	  <row s1-1 of w[0]>
//
//	  <row 0 of w[1]>
//	  ...
//
// Blank lines are ignored everywhere, header lines are key=value pairs up to
// the literal line "w", unknown header keys are skipped, and fields may be
// separated by any run of whitespace. Matrix l has layer_sizes[l+1] rows of
// layer_sizes[l]+1 numbers; column 0 is the bias weight.
//
// Example usage:
//
//	// Save a model
//	if err := serialization.SaveFile("model.txt", net); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load a model
//	net, err := serialization.LoadFile("model.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
