package cmd

import (
	"flag"

	"github.com/etnz/mwrr/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the application, built from the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(flag.CommandLine),
	}
	root.Flags["config"] = predict.Files("*")
	root.Flags["input"] = predict.Files("*.xlsx")
	for _, c := range Commands {
		root.Sub[c.Name()] = commandCompletion(c)
	}
	root.Sub["topic"].Args = predict.Set(append(docs.GetAllTopics(), docs.Index))
	return root
}

func commandCompletion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	return &complete.Command{Flags: predictors(fs)}
}

// predictors predicts nothing after boolean flags and something after the others.
func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
