package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should create translations without a locales directory", func(t *testing.T) {
		trans, err := NewTranslations("en", "")

		if err != nil {
			t.Errorf("NewTranslations() should not return an error, got: %v", err)
		}
		if trans == nil {
			t.Fatal("NewTranslations() should not return nil")
		}
	})

	t.Run("should load extra locale files from a directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[HelloWorld]
		other = "¡Hola Mundo!"
		`)

		trans, err := NewTranslations("es", tmpDir)

		if err != nil {
			t.Fatalf("NewTranslations() should not return an error, got: %v", err)
		}
		if got := trans.GetMessage("HelloWorld", 0, nil); got != "¡Hola Mundo!" {
			t.Errorf("GetMessage() = %v, want %v", got, "¡Hola Mundo!")
		}
	})

	t.Run("should fail on an invalid locale file", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[InvalidSection
		this is not valid TOML`)

		trans, err := NewTranslations("es", tmpDir)

		if err == nil {
			t.Error("NewTranslations() should fail with an invalid TOML file")
		}
		if trans != nil {
			t.Error("NewTranslations() should return nil on failure")
		}
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should change to a shipped language", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("test setup failed:", err)
		}

		if err := trans.SetLanguage("de"); err != nil {
			t.Errorf("SetLanguage() should not return an error, got: %v", err)
		}

		got := trans.GetMessage("menu.option.switch_user", 0, nil)
		if got != "Benutzer wechseln" {
			t.Errorf("GetMessage() after SetLanguage(de) = %v, want %v", got, "Benutzer wechseln")
		}
	})

	t.Run("should fail with an unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("test setup failed:", err)
		}

		if err := trans.SetLanguage("fr"); err == nil {
			t.Error("SetLanguage() should return an error for an unsupported language")
		}
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("should resolve singular and plural forms", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("test setup failed:", err)
		}

		singular := trans.GetMessage("status.changed_files", 1, map[string]interface{}{"Count": 1})
		if singular != "1 changed file" {
			t.Errorf("GetMessage(count=1) = %v, want %v", singular, "1 changed file")
		}

		plural := trans.GetMessage("status.changed_files", 3, map[string]interface{}{"Count": 3})
		if plural != "3 changed files" {
			t.Errorf("GetMessage(count=3) = %v, want %v", plural, "3 changed files")
		}
	})

	t.Run("should render template data", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("test setup failed:", err)
		}

		got := trans.GetMessage("sync.summary", 0, map[string]interface{}{
			"Created": 7,
			"Total":   10,
		})
		if got != "Created issues: 7/10" {
			t.Errorf("GetMessage() = %v, want %v", got, "Created issues: 7/10")
		}
	})

	t.Run("should handle missing messages", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("test setup failed:", err)
		}

		got := trans.GetMessage("NonExistent", 1, nil)
		if got != "Translation missing: NonExistent" {
			t.Errorf("GetMessage() = %v, want %v", got, "Translation missing: NonExistent")
		}
	})
}

func TestSupportedLanguages(t *testing.T) {
	trans, err := NewTranslations("en", "")
	if err != nil {
		t.Fatal("test setup failed:", err)
	}

	langs := trans.SupportedLanguages()
	hasEN, hasDE := false, false
	for _, l := range langs {
		switch l {
		case "en":
			hasEN = true
		case "de":
			hasDE = true
		}
	}
	if !hasEN || !hasDE {
		t.Errorf("SupportedLanguages() = %v, want en and de included", langs)
	}
}

func createTestFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatal("could not create test file:", err)
	}
}
