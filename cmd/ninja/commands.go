package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/petar/GoMNIST"

	"github.com/born-ml/ninja/internal/dataset"
	"github.com/born-ml/ninja/internal/history"
	"github.com/born-ml/ninja/internal/nn"
	"github.com/born-ml/ninja/internal/parallel"
	"github.com/born-ml/ninja/internal/serialization"
	"github.com/born-ml/ninja/internal/train"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags wraps flag errors other than -h in errUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%s: %w: %w", fs.Name(), errUsage, err)
	}
	return nil
}

// parseLayerSizes accepts sizes separated by spaces or commas, e.g.
// "784 30 10".
func parseLayerSizes(text string) ([]int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) < 2 {
		return nil, fmt.Errorf("layer sizes %q: need at least input and output: %w", text, errUsage)
	}
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("layer sizes %q: bad size %q: %w", text, f, errUsage)
		}
		sizes[i] = n
	}
	return sizes, nil
}

func parallelConfig(workers int) parallel.Config {
	if workers <= 1 {
		return parallel.Sequential()
	}
	cfg := parallel.DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = workers
	return cfg
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defaults := train.DefaultConfig()

	fs := newFlagSet("train", stderr)
	examples := fs.String("examples", "", "input examples file (required)")
	modelPath := fs.String("model", "", "output model file (required)")
	layerSizes := fs.String("layer-sizes", "", "layer sizes including input/output, e.g. \"784 30 10\" (required)")
	batchSize := fs.Int("batch-size", defaults.BatchSize, "examples per gradient step (0 = whole file)")
	epochs := fs.Int("epochs", defaults.Epochs, "passes over the examples")
	lr := fs.Float64("learning-rate", defaults.LearningRate, "learning rate")
	seed := fs.Int64("seed", nn.DefaultSeed, "weight initialization seed")
	workers := fs.Int("workers", 1, "goroutines per batch (1 = sequential)")
	historyPath := fs.String("history", "", "SQLite file recording run statistics (optional)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *examples == "" || *modelPath == "" || *layerSizes == "" {
		fs.Usage()
		return fmt.Errorf("train: --examples, --model and --layer-sizes are required: %w", errUsage)
	}

	sizes, err := parseLayerSizes(*layerSizes)
	if err != nil {
		return err
	}
	cfg := train.Config{
		BatchSize:    *batchSize,
		Epochs:       *epochs,
		LearningRate: *lr,
		Parallel:     parallelConfig(*workers),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("train: %w: %w", errUsage, err)
	}

	net, err := nn.New(sizes, nn.WithSeed(*seed))
	if err != nil {
		return err
	}

	trainer := train.NewTrainer(cfg)
	trainer.Out = stdout

	if *historyPath != "" {
		store, err := history.Open(ctx, *historyPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.StartRun(ctx, history.RunInfo{
			StartedAt:    time.Now(),
			LayerSizes:   sizes,
			BatchSize:    cfg.BatchSize,
			Epochs:       cfg.Epochs,
			LearningRate: cfg.LearningRate,
			Seed:         *seed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recording run %d in %s\n", runID, *historyPath)
		trainer.Recorder = store.Recorder(runID)
	}

	if _, err := trainer.Train(ctx, net, train.FileSource(*examples)); err != nil {
		return err
	}
	if err := serialization.SaveFile(*modelPath, net); err != nil {
		return err
	}
	sum, err := serialization.FileChecksum(*modelPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Model written to %s (sha256 %x)\n", *modelPath, sum)
	return nil
}

func runPredict(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("predict", stderr)
	verbose := fs.Bool("verbose", false, "also write every ranked output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 4 && (rest[3] == "--verbose" || rest[3] == "-verbose") {
		*verbose = true
		rest = rest[:3]
	}
	if len(rest) != 3 {
		return fmt.Errorf("predict: want MODEL EXAMPLES RESPONSE [--verbose], got %d arguments: %w", len(rest), errUsage)
	}

	net, err := serialization.LoadFile(rest[0])
	if err != nil {
		return err
	}

	//nolint:gosec // G304: File path comes from user input, which is expected for example files
	in, err := os.Open(rest[1])
	if err != nil {
		return fmt.Errorf("failed to open examples: %w", err)
	}
	defer in.Close()

	//nolint:gosec // G304: File path comes from user input
	out, err := os.Create(rest[2])
	if err != nil {
		return fmt.Errorf("failed to create response file: %w", err)
	}

	p := &train.Predictor{Net: net, Verbose: *verbose}
	n, err := p.Predict(in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close response file: %w", cerr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", rest[1], err)
	}
	fmt.Fprintf(stdout, "Predicted %d examples\n", n)
	return nil
}

func runEvaluate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("evaluate", stderr)
	modelPath := fs.String("model", "", "model file (required)")
	examples := fs.String("examples", "", "labeled examples file (required)")
	batchSize := fs.Int("batch-size", 1000, "examples read at a time")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *modelPath == "" || *examples == "" {
		fs.Usage()
		return fmt.Errorf("evaluate: --model and --examples are required: %w", errUsage)
	}

	net, err := serialization.LoadFile(*modelPath)
	if err != nil {
		return err
	}
	//nolint:gosec // G304: File path comes from user input, which is expected for example files
	f, err := os.Open(*examples)
	if err != nil {
		return fmt.Errorf("failed to open examples: %w", err)
	}
	defer f.Close()

	ev, err := train.Evaluate(net, f, *batchSize)
	if err != nil {
		return fmt.Errorf("%s: %w", *examples, err)
	}
	fmt.Fprintf(stdout, "Evaluation: %s\n", ev)
	return nil
}

func runMNIST(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("mnist", stderr)
	dataDir := fs.String("data", "./data", "directory with the gzipped MNIST IDX files")
	outTrain := fs.String("out-train", "mnist.train", "training examples output")
	outTest := fs.String("out-test", "mnist.test", "test examples output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	trainSet, testSet, err := dataset.LoadMNIST(*dataDir)
	if err != nil {
		return err
	}
	for _, job := range []struct {
		path string
		set  *GoMNIST.Set
	}{
		{*outTrain, trainSet},
		{*outTest, testSet},
	} {
		n, err := writeExamplesFile(job.path, job.set)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %d examples to %s\n", n, job.path)
	}
	return nil
}

func writeExamplesFile(path string, set *GoMNIST.Set) (n int, err error) {
	//nolint:gosec // G304: File path comes from user input
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return dataset.WriteExamples(f, set)
}
