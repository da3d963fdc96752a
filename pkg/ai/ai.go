// Package ai generates texts and images with a hosted model.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var ErrEmptyResult = errors.New("ai: model returned nothing")

// Image is a generated picture.
type Image struct {
	Bytes    []byte
	MIMEType string
}

type Interface interface {
	// GenerateText answers the user input following the system instruction.
	GenerateText(ctx context.Context, system string, user string) (string, error)

	// GenerateImage draws a picture for the prompt in the aspect ratio like "16:9".
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) (Image, error)
}

type Config struct {
	APIKey string

	// defaults to DefaultTextModel / DefaultImageModel
	TextModel  string
	ImageModel string
}

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"
)

type GenAI struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

var _ Interface = &GenAI{}

func New(ctx context.Context, conf Config) (*GenAI, error) {
	if conf.APIKey == "" {
		return nil, errors.New("ai: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  conf.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: creating client: %w", err)
	}

	g := &GenAI{client: client, textModel: conf.TextModel, imageModel: conf.ImageModel}
	if g.textModel == "" {
		g.textModel = DefaultTextModel
	}
	if g.imageModel == "" {
		g.imageModel = DefaultImageModel
	}
	return g, nil
}

func (g *GenAI) GenerateText(ctx context.Context, system string, user string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.textModel,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("ai: generating text: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}

func (g *GenAI) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (Image, error) {
	resp, err := g.client.Models.GenerateImages(
		ctx,
		g.imageModel,
		prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    aspectRatio,
			OutputMIMEType: "image/png",
		},
	)
	if err != nil {
		return Image{}, fmt.Errorf("ai: generating image: %w", err)
	}
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mime := gi.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return Image{Bytes: gi.Image.ImageBytes, MIMEType: mime}, nil
	}
	return Image{}, ErrEmptyResult
}
