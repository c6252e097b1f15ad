package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/etnz/inflation"
	"github.com/etnz/inflation/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests and returns when there is none.
//
// Install it with COMP_INSTALL=1 cpi.
func Complete(name string) {
	completionCommand().Complete(name)
}

func completionCommand() *complete.Command {
	categories := complete.PredictFunc(func(prefix string) []string {
		s := completionSeries()
		if s == nil {
			return nil
		}
		return s.Categories()
	})
	years := complete.PredictFunc(func(prefix string) []string {
		s := completionSeries()
		if s == nil {
			return nil
		}
		var ys []string
		for _, y := range s.Years() {
			ys = append(ys, strconv.Itoa(y))
		}
		return ys
	})
	topics := complete.PredictFunc(func(prefix string) []string {
		ts, _ := docs.GetAllTopics()
		return ts
	})
	images := predict.Or(predict.Files("*.png"), predict.Files("*.svg"))

	query := func(extra map[string]complete.Predictor) *complete.Command {
		flags := map[string]complete.Predictor{
			"c":      categories,
			"from":   years,
			"to":     years,
			"amount": predict.Set{"100", "1000", "10000"},
		}
		for k, v := range extra {
			flags[k] = v
		}
		return &complete.Command{Flags: flags}
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Or(predict.Files("*.yaml"), predict.Files("*.toml"), predict.Files("*.json")),
			"data":   predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"), predict.Files("*.json")),
			"v":      nil,
		},
		Sub: map[string]*complete.Command{
			"categories": {},
			"years":      {},
			"adjust":     query(nil),
			"prompt":     query(nil),
			"trend": {Flags: map[string]complete.Predictor{
				"c":     categories,
				"from":  years,
				"to":    years,
				"chart": images,
			}},
			"dashboard": query(map[string]complete.Predictor{
				"chart":      images,
				"html":       predict.Files("*.html"),
				"no-insight": nil,
				"json":       nil,
			}),
			"config": {},
			"topic":  {Args: topics},
			"help":   {},
		},
	}
}

// completionSeries loads the configured dataset, quietly.
func completionSeries() *inflation.Series {
	cfg, err := LoadConfig()
	if err != nil {
		return nil
	}
	// logs would corrupt the completion output.
	log.SetLevel(log.FatalLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := LoadSeries(ctx, cfg)
	if err != nil {
		return nil
	}
	return s
}
