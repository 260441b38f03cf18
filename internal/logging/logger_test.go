package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunTagsContext(t *testing.T) {
	InitLogger()

	ctx := NewRun(context.Background())

	assert.NotEmpty(t, RunID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestWithStageAddsField(t *testing.T) {
	InitLogger()

	ctx := NewRun(context.Background())
	logger := WithStage(ctx, "erosion")

	assert.NotNil(t, logger)
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	InitLogger()

	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestRunIDEmptyWithoutRun(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
}
