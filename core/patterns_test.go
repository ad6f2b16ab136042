package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/relicworks/archeologist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectMissingGeneratedBody tests the reflection boilerplate rule.
func TestDetectMissingGeneratedBody(t *testing.T) {
	t.Run("flags reflected class without macro", func(t *testing.T) {
		content := "#pragma once\n\nUCLASS(Blueprintable)\nclass MYGAME_API AFoo : public AActor\n{\npublic:\n\tvoid Tick();\n};\n"
		hits := detectMissingGeneratedBody(content, "Source/Foo.h")

		require.Len(t, hits, 1)
		assert.Equal(t, schema.CategoryMissingGeneratedBody, hits[0].Category)
		assert.Equal(t, schema.SeverityCritical, hits[0].Severity)
		assert.Equal(t, "Source/Foo.h", hits[0].File)
		assert.Contains(t, hits[0].Message, "AFoo")
		assert.Equal(t, 3, hits[0].Line)
	})

	t.Run("accepts macro within lookahead window", func(t *testing.T) {
		content := "UCLASS()\nclass AFoo : public AActor\n{\n\tGENERATED_BODY()\n};\n"
		assert.Empty(t, detectMissingGeneratedBody(content, "Source/Foo.h"))
	})

	t.Run("misses macro beyond lookahead window", func(t *testing.T) {
		padding := strings.Repeat("// filler\n", 250) // ~2500 chars
		content := "USTRUCT()\nstruct FBar\n{\n" + padding + "\tGENERATED_USTRUCT_BODY()\n};\n"
		hits := detectMissingGeneratedBody(content, "Source/Bar.h")
		require.Len(t, hits, 1)
		assert.Contains(t, hits[0].Message, "FBar")
	})

	t.Run("ignores implementation files", func(t *testing.T) {
		content := "UCLASS()\nclass AFoo {\n};\n"
		assert.Empty(t, detectMissingGeneratedBody(content, "Source/Foo.cpp"))
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		content := "UCLASS()\nclass AFoo : public AActor\n{\n};\n"
		first := detectMissingGeneratedBody(content, "Source/Foo.h")
		second := detectMissingGeneratedBody(content, "Source/Foo.h")
		assert.Equal(t, first, second)
	})
}

// TestDetectGodClass tests size-based decomposition rules.
func TestDetectGodClass(t *testing.T) {
	t.Run("flags oversized class as critical", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("class UMonolith\n{\n")
		for i := range 1100 {
			fmt.Fprintf(&b, "\tint Field%d;\n", i)
		}
		b.WriteString("};\n")

		hits := detectGodClass(b.String(), "Source/Monolith.h")
		require.Len(t, hits, 1)
		assert.Equal(t, schema.CategoryGodClass, hits[0].Category)
		assert.Equal(t, schema.SeverityCritical, hits[0].Severity)
		assert.Contains(t, hits[0].Message, "UMonolith")
	})

	t.Run("flags method-heavy class as warning", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("class UBusy\n{\npublic:\n")
		for i := range 25 {
			fmt.Fprintf(&b, "\tvoid Method%d(int Value);\n", i)
		}
		b.WriteString("};\n")

		hits := detectGodClass(b.String(), "Source/Busy.h")
		require.Len(t, hits, 1)
		assert.Equal(t, schema.SeverityWarning, hits[0].Severity)
		assert.Contains(t, hits[0].Message, "approaching")
	})

	t.Run("small class is clean", func(t *testing.T) {
		content := "class USmall\n{\npublic:\n\tvoid Only();\n};\n"
		assert.Empty(t, detectGodClass(content, "Source/Small.h"))
	})

	t.Run("skips forward declarations", func(t *testing.T) {
		content := "class UForward;\nstruct FAlso;\n"
		assert.Empty(t, detectGodClass(content, "Source/Fwd.h"))
	})
}

// TestMatchBracedBody tests depth-counted brace matching.
func TestMatchBracedBody(t *testing.T) {
	content := "{ outer { inner } tail }"
	body, ok := matchBracedBody(content, 0)
	require.True(t, ok)
	assert.Equal(t, " outer { inner } tail ", body)

	_, ok = matchBracedBody("{ never closed", 0)
	assert.False(t, ok)

	_, ok = matchBracedBody("no brace", 0)
	assert.False(t, ok)
}

// TestDetectHardCodedAssetPath tests the content-path literal rule.
func TestDetectHardCodedAssetPath(t *testing.T) {
	t.Run("flags virtual content path in cpp", func(t *testing.T) {
		content := "UTexture2D* Icon = LoadObject<UTexture2D>(nullptr, TEXT(\"/Game/UI/Icons/Sword\"));\n"
		hits := detectHardCodedAssetPath(content, "Source/Hud.cpp")

		require.Len(t, hits, 1)
		assert.Equal(t, schema.CategoryHardCodedAssetPath, hits[0].Category)
		assert.Equal(t, schema.SeverityWarning, hits[0].Severity)
		assert.Contains(t, hits[0].Message, "/Game/UI/Icons/Sword")
		assert.Contains(t, hits[0].Suggestion, "TSoftObjectPtr")
	})

	t.Run("ignores non-engine strings", func(t *testing.T) {
		content := "FString Path = TEXT(\"/tmp/export.txt\");\n"
		assert.Empty(t, detectHardCodedAssetPath(content, "Source/Io.cpp"))
	})
}

// TestDetectUntrackedNewObject tests the lifetime-leak rule.
func TestDetectUntrackedNewObject(t *testing.T) {
	t.Run("flags allocation with no nearby registration", func(t *testing.T) {
		content := "void UFactory::Spawn()\n{\n\tUWidget* W = NewObject<UWidget>(this);\n\tW->Init();\n}\n"
		hits := detectUntrackedNewObject(content, "Source/Factory.cpp")

		require.Len(t, hits, 1)
		assert.Equal(t, schema.CategoryUntrackedNewObject, hits[0].Category)
		assert.Equal(t, 3, hits[0].Line)
	})

	t.Run("accepts AddToRoot within context window", func(t *testing.T) {
		content := "UWidget* W = NewObject<UWidget>(this);\nW->AddToRoot();\n"
		assert.Empty(t, detectUntrackedNewObject(content, "Source/Factory.cpp"))
	})

	t.Run("accepts UPROPERTY within context window", func(t *testing.T) {
		content := "// Stored in UPROPERTY field below\nCached = NewObject<UWidget>(this);\n"
		assert.Empty(t, detectUntrackedNewObject(content, "Source/Factory.cpp"))
	})

	t.Run("registration outside the five-line window still flags", func(t *testing.T) {
		content := "X = NewObject<UWidget>(this);\n\n\n\n\nX->AddToRoot();\n"
		hits := detectUntrackedNewObject(content, "Source/Factory.cpp")
		assert.Len(t, hits, 1)
	})
}

// TestDetectDeprecatedAPI tests the legacy-usage table.
func TestDetectDeprecatedAPI(t *testing.T) {
	t.Run("each rule reports its own replacement", func(t *testing.T) {
		cases := []struct {
			snippet    string
			suggestion string
		}{
			{"auto* Obj = ConstructObject<UWidget>(Class);", "NewObject<T>"},
			{"TAssetPtr<UTexture> Tex;", "TSoftObjectPtr"},
			{"FStringAssetReference Ref;", "FSoftObjectPath"},
			{"FString Dir = FPaths::GameDir();", "FPaths::ProjectDir()"},
			{"AActor* A = GWorld->SpawnActor(Class);", "GetWorld()"},
		}
		for _, tc := range cases {
			hits := detectDeprecatedAPI(tc.snippet, "Source/Legacy.cpp")
			require.Len(t, hits, 1, tc.snippet)
			assert.Equal(t, schema.SeverityInfo, hits[0].Severity)
			assert.Contains(t, hits[0].Suggestion, tc.suggestion)
		}
	})

	t.Run("clean code has no hits", func(t *testing.T) {
		content := "UWidget* W = NewObject<UWidget>(this);\n"
		assert.Empty(t, detectDeprecatedAPI(content, "Source/Modern.cpp"))
	})

	t.Run("multiple occurrences produce multiple hits", func(t *testing.T) {
		content := "TAssetPtr<UTexture> A;\nTAssetPtr<UTexture> B;\n"
		hits := detectDeprecatedAPI(content, "Source/Legacy.h")
		assert.Len(t, hits, 2)
		assert.Equal(t, 1, hits[0].Line)
		assert.Equal(t, 2, hits[1].Line)
	})
}
