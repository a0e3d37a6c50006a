package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type TextExtractor struct {
	mock.Mock
}

func (m *TextExtractor) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}
