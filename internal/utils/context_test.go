// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestSkipClientUpdate(t *testing.T) {
	ctx := context.Background()
	if SkipClientUpdate(ctx) {
		t.Fatal("expected plain context not to be marked")
	}

	marked := WithSkipClientUpdate(ctx)
	if !SkipClientUpdate(marked) {
		t.Fatal("expected marked context to skip client update")
	}
	if SkipClientUpdate(ctx) {
		t.Error("marking must not affect the parent context")
	}
}

func TestSkipClientUpdate_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), SkipClientUpdateCtxKey, "yes")
	if SkipClientUpdate(ctx) {
		t.Error("expected non-bool value to be ignored")
	}
}

func TestGetRequestIDFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	id, ok := GetRequestIDFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id != "req-42" {
		t.Errorf("expected 'req-42', got '%s'", id)
	}
}

func TestGetRequestIDFromContext_Missing(t *testing.T) {
	if _, ok := GetRequestIDFromContext(context.Background()); ok {
		t.Error("expected ok=false for missing request id")
	}
	if _, ok := GetRequestIDFromContext(WithRequestID(context.Background(), "")); ok {
		t.Error("expected ok=false for empty request id")
	}
}
