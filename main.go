package main

import (
	"context"
	"log"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/gorlkit/gorl/agent/linear/gaussianac"
	"github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/environment/classiccontrol/pendulum"
	"github.com/gorlkit/gorl/experiment"
	"github.com/gorlkit/gorl/experiment/tracker"
	"github.com/gorlkit/gorl/utils/weights"
)

func main() {
	var seed uint64 = 192382

	// Create the environment
	bounds := r1.Interval{Min: -0.01, Max: 0.01}
	starter := environment.NewUniformStarter([]r1.Interval{bounds, bounds},
		seed)
	task := pendulum.NewSwingUp(starter, 500)
	env, _, err := pendulum.New(task, 0.99)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	// Create the learning agent
	config := gaussianac.Config{
		ActorLearningRate:  0.001,
		CriticLearningRate: 0.01,
		Decay:              0.5,
		ScaleActorLR:       true,

		TrainEpisodes:   200,
		CheckpointEvery: 50,
		ModelName:       "pendulum-gac",
	}
	init := weights.NewLinearUV(weights.NewZeroUV())
	a, err := gaussianac.New(env, config, init, seed)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}

	// Train
	if err := a.Train(context.Background()); err != nil {
		log.Fatalf("could not train agent: %v", err)
	}

	// Evaluate the trained agent
	returns := tracker.NewReturn("./data.bin")
	eval, err := experiment.NewEvaluation(env, a, experiment.Config{
		Episodes: 10,
	}, returns)
	if err != nil {
		log.Fatalf("could not create evaluation: %v", err)
	}

	if err := eval.Run(context.Background()); err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
	if err := eval.Save(); err != nil {
		log.Fatalf("could not save evaluation data: %v", err)
	}

	data, err := tracker.LoadData("./data.bin")
	if err != nil {
		log.Fatalf("could not load evaluation data: %v", err)
	}
	log.Printf("evaluation returns: %v", data)
}
