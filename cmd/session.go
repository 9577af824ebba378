package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattsolo1/grove-routes/cmd/config"
	"github.com/mattsolo1/grove-routes/pkg/scenario"
	"github.com/mattsolo1/grove-routes/pkg/service"
)

// session builds the project a command inspects: the default project, or the
// state a scenario leaves behind when scenarioPath is set.
func session(scenarioPath string) (*service.Service, []scenario.Result, error) {
	if scenarioPath == "" {
		svc, err := config.InitService()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize service: %w", err)
		}
		return svc, nil, nil
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, nil, err
	}
	runner, err := scenario.NewRunner(config.ServiceConfig(), config.NewLogger())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	results, err := runner.Run(sc)
	if err != nil {
		return runner.Service(), results, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return runner.Service(), results, nil
}

func wantJSON(flag bool) bool {
	return flag || config.Output() == "json"
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
