package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
)

func TestMatchNormalizesInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := baseInput()
	input.Pole = strptr("3P")
	created := mustCreate(t, env, input)

	cases := []struct {
		name     string
		criteria MatchCriteria
	}{
		{
			"exact",
			MatchCriteria{Description: "Distribution Board", Size: "400x600", Breakers: "12", Brand: "ABB"},
		},
		{
			"case insensitive",
			MatchCriteria{Description: "DISTRIBUTION BOARD", Size: "400X600", Breakers: "12", Brand: "abb"},
		},
		{
			"surrounding whitespace",
			MatchCriteria{Description: " Distribution Board\t", Size: " 400x600 ", Breakers: " 12 ", Brand: "  ABB"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := env.match.Match(ctx, tc.criteria)
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			if !result.Matched || result.Product == nil {
				t.Fatal("expected a match")
			}
			if result.Product.ID != created.ID {
				t.Fatalf("matched product %d, want %d", result.Product.ID, created.ID)
			}
		})
	}
}

func TestMatchMissesOnAnyFieldMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreate(t, env, baseInput())

	result, err := env.match.Match(ctx, MatchCriteria{
		Description: "Distribution Board",
		Size:        "400x600",
		Breakers:    "16",
		Brand:       "ABB",
	})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if result.Matched {
		t.Fatal("breaker mismatch should not match")
	}
}

func TestMatchOptionalCriteriaNarrow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := baseInput()
	input.Pole = strptr("3P")
	input.IPEnclosure = nil
	mustCreate(t, env, input)

	core := MatchCriteria{Description: "Distribution Board", Size: "400x600", Breakers: "12", Brand: "ABB"}

	// Omitted optional criteria do not narrow.
	result, err := env.match.Match(ctx, core)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected match without optional criteria")
	}

	// Provided and equal narrows to the same row.
	withPole := core
	withPole.Pole = strptr(" 3p ")
	result, err = env.match.Match(ctx, withPole)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected match with equal pole")
	}

	// Provided and different excludes the row.
	wrongPole := core
	wrongPole.Pole = strptr("4P")
	result, err = env.match.Match(ctx, wrongPole)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if result.Matched {
		t.Fatal("pole mismatch should not match")
	}

	// Criterion provided but the product has no value: no match.
	withIP := core
	withIP.IPEnclosure = strptr("IP20")
	result, err = env.match.Match(ctx, withIP)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if result.Matched {
		t.Fatal("missing optional value should not match")
	}
}

func TestMatchRequiresCoreCriteria(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.match.Match(context.Background(), MatchCriteria{Description: "x", Size: "y", Brand: "z"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMatchHasNoSideEffects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	view := mustCreate(t, env, baseInput())

	if _, err := env.match.Match(ctx, MatchCriteria{
		Description: "Distribution Board", Size: "400x600", Breakers: "12", Brand: "ABB",
	}); err != nil {
		t.Fatalf("match: %v", err)
	}

	entries, err := env.history.GetProductHistory(ctx, view.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("match must not write history, got %d rows", len(entries))
	}
}
