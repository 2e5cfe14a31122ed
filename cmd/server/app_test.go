package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestOptions_GraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(options()))
}

func TestLoadConfig_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mystery")

	_, err := loadConfig()
	require.ErrorContains(t, err, "invalid configuration")
}
