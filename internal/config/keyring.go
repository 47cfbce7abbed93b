package config

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "Codexplain"

	// KeyringUser is the user identifier for credentials
	KeyringUser = "default"

	// KeyringGeminiItem is the key for the Gemini API key
	KeyringGeminiItem = "gemini-api-key"

	// KeyringOpenAIItem is the key for the OpenAI API key
	KeyringOpenAIItem = "openai-api-key"

	// KeyringHuggingFaceItem is the key for the Hugging Face API key
	KeyringHuggingFaceItem = "huggingface-api-key"
)

// KeyringManager handles secure credential storage in the OS keychain
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// SaveKey stores a credential in the OS keychain under the given item name.
// macOS: Keychain Access, Windows: Credential Manager, Linux: Secret Service
// (requires libsecret).
func (km *KeyringManager) SaveKey(item, value string) error {
	if value == "" {
		return fmt.Errorf("credential cannot be empty")
	}

	if err := keyring.Set(KeyringService, item, value); err != nil {
		km.logger.Error("failed to save credential to keychain", "item", item, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("credential saved to keychain", "service", KeyringService, "item", item)
	return nil
}

// GetKey retrieves a credential from the OS keychain. A missing entry is
// not an error; it returns "".
func (km *KeyringManager) GetKey(item string) (string, error) {
	value, err := keyring.Get(KeyringService, item)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return value, nil
}

// DeleteKey removes a credential from the OS keychain
func (km *KeyringManager) DeleteKey(item string) error {
	err := keyring.Delete(KeyringService, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}

// IsAvailable reports whether the OS keychain works on this system
// (headless Linux without libsecret does not).
func (km *KeyringManager) IsAvailable() bool {
	const probe = "availability-probe"
	if err := keyring.Set(KeyringService, probe, "ok"); err != nil {
		return false
	}
	keyring.Delete(KeyringService, probe)
	return true
}
