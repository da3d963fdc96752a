package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/ai"
)

type Generator struct {
	Impl struct {
		GenerateText  func(ctx context.Context, system string, user string) (string, error)
		GenerateImage func(ctx context.Context, prompt string, aspectRatio string) (ai.Image, error)
	}
	Calls struct {
		GenerateText []struct {
			System string
			User   string
		}
		GenerateImage []struct {
			Prompt      string
			AspectRatio string
		}
	}
}

var _ ai.Interface = &Generator{}

func New() *Generator {
	return &Generator{}
}

func (m *Generator) GenerateText(ctx context.Context, system string, user string) (string, error) {
	m.Calls.GenerateText = append(m.Calls.GenerateText, struct {
		System string
		User   string
	}{System: system, User: user})
	if m.Impl.GenerateText != nil {
		return m.Impl.GenerateText(ctx, system, user)
	}
	panic(errors.New("it should no be called"))
}

func (m *Generator) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (ai.Image, error) {
	m.Calls.GenerateImage = append(m.Calls.GenerateImage, struct {
		Prompt      string
		AspectRatio string
	}{Prompt: prompt, AspectRatio: aspectRatio})
	if m.Impl.GenerateImage != nil {
		return m.Impl.GenerateImage(ctx, prompt, aspectRatio)
	}
	panic(errors.New("it should no be called"))
}
