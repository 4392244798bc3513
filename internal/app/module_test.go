package app

import (
	"testing"

	"github.com/matheus3301/mockmsg/internal/config"
	"go.uber.org/fx"
)

func TestModuleGraph(t *testing.T) {
	cfg := config.Default()
	cfg.ScenarioFile = "/tmp/scenario.json"
	for _, p := range []Params{
		{Profile: "main"},
		{Profile: "demo", Config: cfg},
	} {
		if err := fx.ValidateApp(Module(p)); err != nil {
			t.Errorf("ValidateApp(%+v): %v", p.Profile, err)
		}
	}
}
