// Package main is a command that loads a multibody model JSON file and
// prints a structural summary of the kinematic tree.
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/mechlab/kinetree/multibody"
)

func main() {
	name := flag.String("name", "", "override the model name from the file")
	debug := flag.Bool("debug", false, "verbose logging")

	flag.Parse()

	logger := newLogger(*debug).Sugar()
	defer logger.Sync() //nolint:errcheck

	if flag.NArg() < 1 {
		flag.Usage()
		logger.Fatal("need a model file argument <model.json>")
	}

	mb, err := multibody.ParseModelJSONFile(flag.Arg(0), *name)
	if err != nil {
		logger.Fatalw("failed to load model", "file", flag.Arg(0), "error", err)
	}

	logger.Infow("model loaded",
		"file", flag.Arg(0),
		"bodies", mb.NrBodies(),
		"joints", mb.NrJoints(),
		"params", mb.NrParams(),
		"dof", mb.NrDof(),
	)

	for i := 0; i < mb.NrJoints(); i++ {
		j := mb.Joint(i)
		succ := mb.Successor(i)
		logger.Debugw("joint",
			"index", i,
			"name", j.Name(),
			"type", string(j.Type()),
			"dof", j.DoF(),
			"pred", bodyName(mb, mb.Predecessor(i)),
			"succ", bodyName(mb, succ),
		)
	}

	for b := 0; b < mb.NrBodies(); b++ {
		parent := "world"
		if p := mb.Parent(b); p != multibody.RootSentinel {
			parent = mb.Body(p).Name()
		}
		logger.Infow("body",
			"index", b,
			"name", mb.Body(b).Name(),
			"mass", mb.Body(b).Mass(),
			"parent", parent,
		)
	}
}

func bodyName(mb *multibody.MultiBody, num int) string {
	if num < 0 || num >= mb.NrBodies() {
		return "world"
	}
	return mb.Body(num).Name()
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
