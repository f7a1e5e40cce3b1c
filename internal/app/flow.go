package app

import (
	"context"

	"github.com/robalyx/translate/internal/language"
	"github.com/robalyx/translate/internal/setup/config"
	"github.com/robalyx/translate/internal/translator"
	"go.uber.org/zap"
)

// Translator translates text into the language it was created for.
type Translator interface {
	Translate(ctx context.Context, text string) (*translator.Result, error)
}

// Factory creates a Translator for a target language.
type Factory func(lang string) Translator

// Request is a single translation asked for on the command line.
type Request struct {
	Text   string
	Source string // Source language or language.Auto
	Target string // Target language or language.Auto
}

// Policy holds the languages used when the user leaves a choice on auto.
type Policy struct {
	DefaultTarget  string // Target used when Request.Target is auto
	AutoSource     string // Detected language that means "already translated" when Request.Target is auto
	FallbackTarget string // Re-translate target when Request.Source is auto
}

// PolicyFromConfig reads the policy languages from the configuration.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		DefaultTarget:  cfg.DefaultTarget,
		AutoSource:     cfg.AutoSource,
		FallbackTarget: cfg.FallbackTarget,
	}
}

// Translate runs the first translation and, when the text turns out to
// already be in the target language, a second one into the fallback language.
// It returns the result that should be shown.
func Translate(ctx context.Context, factory Factory, policy Policy, req Request, logger *zap.Logger) (*translator.Result, error) {
	target := req.Target
	if target == language.Auto {
		target = policy.DefaultTarget
	}

	first, err := factory(target).Translate(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	if !needsRetranslate(policy, req, first.DetectedLanguage) {
		return first, nil
	}

	fallback := req.Source
	if fallback == language.Auto {
		fallback = policy.FallbackTarget
	}

	logger.Debug("Text already in target language, translating again",
		zap.String("detected_language", first.DetectedLanguage),
		zap.String("target", target),
		zap.String("fallback", fallback))

	return factory(fallback).Translate(ctx, req.Text)
}

// needsRetranslate reports whether the detected language shows the text is
// already in the language the user asked for. With an auto target only the
// configured auto source language counts.
func needsRetranslate(policy Policy, req Request, detected string) bool {
	if req.Target != language.Auto {
		return language.Same(detected, req.Target)
	}
	return language.Same(detected, policy.AutoSource)
}
