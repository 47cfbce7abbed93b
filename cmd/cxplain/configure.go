package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/codexplain/codexplain-go/internal/config"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive setup wizard (with OS keychain support)",
	Long: `Walk through Codexplain configuration step-by-step with secure credential
storage.

This will configure:
1. LLM provider (Gemini or OpenAI)
2. API key (stored in OS keychain by default)
3. Model selection
4. Cache and history preferences`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().Bool("open", false, "Open the provider's API key page in a browser")
	configureCmd.Flags().Bool("env", false, "Write the API key to ~/.codexplain/.env instead of keychain/config")
}

var keyPages = map[string]string{
	"gemini": "https://aistudio.google.com/apikey",
	"openai": "https://platform.openai.com/api-keys",
}

func runConfigure(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Codexplain Configuration Wizard")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	openPage, _ := cmd.Flags().GetBool("open")
	envFile, _ := cmd.Flags().GetBool("env")

	reader := bufio.NewReader(os.Stdin)

	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	loadedCfg, err := config.Load(configPath)
	if err != nil {
		loadedCfg = config.Default()
	}

	km := config.NewKeyringManager()
	keychainAvailable := km.IsAvailable()
	if !keychainAvailable && !envFile {
		fmt.Println("⚠️  OS keychain not available (headless system or Linux without libsecret)")
		fmt.Println("   Will store the API key in the config file instead.")
		fmt.Println()
	}

	// Step 1: provider
	fmt.Println("Step 1/4: LLM Provider")
	fmt.Printf("Current: %s\n", loadedCfg.Provider)
	fmt.Print("Provider (gemini/openai) [gemini]: ")
	provider, _ := reader.ReadString('\n')
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = "gemini"
	}
	if provider != "gemini" && provider != "openai" {
		return fmt.Errorf("unknown provider %q", provider)
	}
	loadedCfg.Provider = provider

	// Step 2: API key
	fmt.Println()
	fmt.Println("Step 2/4: API Key")
	if openPage {
		if err := browser.OpenURL(keyPages[provider]); err != nil {
			logger.WithError(err).Warn("Could not open browser")
		}
	} else {
		fmt.Printf("Get your key at: %s\n", keyPages[provider])
	}

	fmt.Printf("Enter your %s API key (input hidden, blank to keep current): ", provider)
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read API key: %w", err)
	}
	apiKey := strings.TrimSpace(string(keyBytes))

	if apiKey != "" {
		if err := storeAPIKey(loadedCfg, km, provider, apiKey, keychainAvailable, envFile); err != nil {
			return err
		}
	}

	fmt.Print("Also store a Hugging Face key? (y/N): ")
	if strings.ToLower(readLine(reader)) == "y" {
		fmt.Print("Enter your Hugging Face API key (input hidden): ")
		hfBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read API key: %w", err)
		}
		if hfKey := strings.TrimSpace(string(hfBytes)); hfKey != "" {
			if keychainAvailable && !envFile {
				if err := km.SaveKey(config.KeyringHuggingFaceItem, hfKey); err == nil {
					fmt.Println("✅ Hugging Face key saved to OS keychain")
				} else {
					loadedCfg.API.HuggingFaceKey = hfKey
				}
			} else {
				loadedCfg.API.HuggingFaceKey = hfKey
			}
		}
	}

	// Step 3: model
	fmt.Println()
	fmt.Println("Step 3/4: Model")
	switch provider {
	case "gemini":
		fmt.Printf("Model [%s]: ", loadedCfg.API.GeminiModel)
		if model := readLine(reader); model != "" {
			loadedCfg.API.GeminiModel = model
		}
	case "openai":
		fmt.Printf("Model [%s]: ", loadedCfg.API.OpenAIModel)
		if model := readLine(reader); model != "" {
			loadedCfg.API.OpenAIModel = model
		}
	}

	// Step 4: cache and history
	fmt.Println()
	fmt.Println("Step 4/4: Cache and History")
	fmt.Printf("Cache responses locally? (Y/n) [%v]: ", loadedCfg.Cache.Enabled)
	if answer := readLine(reader); answer != "" {
		loadedCfg.Cache.Enabled = strings.ToLower(answer) != "n"
	}
	fmt.Printf("Record explanation history? (Y/n) [%v]: ", loadedCfg.History.Enabled)
	if answer := readLine(reader); answer != "" {
		loadedCfg.History.Enabled = strings.ToLower(answer) != "n"
	}

	if err := config.Save(loadedCfg, configPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✅ Configuration saved to %s\n", configPath)
	return nil
}

// storeAPIKey places the key in the .env file, the OS keychain, or the
// config file, in that order of preference.
func storeAPIKey(cfg *config.Config, km *config.KeyringManager, provider, apiKey string, keychainAvailable, envFile bool) error {
	if envFile {
		homeDir, _ := os.UserHomeDir()
		envPath := filepath.Join(homeDir, ".codexplain", ".env")
		envVar := "GEMINI_API_KEY"
		if provider == "openai" {
			envVar = "OPENAI_API_KEY"
		}
		if err := config.WriteEnvKey(envPath, envVar, apiKey); err != nil {
			return fmt.Errorf("write env file: %w", err)
		}
		fmt.Printf("✅ API key written to %s\n", envPath)
		return nil
	}

	if keychainAvailable {
		item := config.KeyringGeminiItem
		if provider == "openai" {
			item = config.KeyringOpenAIItem
		}
		if err := km.SaveKey(item, apiKey); err != nil {
			fmt.Printf("⚠️  Failed to save to keychain: %v\n", err)
			fmt.Println("Saving to config file instead...")
		} else {
			fmt.Println("✅ API key saved to OS keychain (secure)")
			fmt.Printf("   📍 %s\n", keychainLocation())
			cfg.API.UseKeychain = true
			return nil
		}
	}

	switch provider {
	case "gemini":
		cfg.API.GeminiKey = apiKey
	case "openai":
		cfg.API.OpenAIKey = apiKey
	}
	cfg.API.UseKeychain = false
	fmt.Println("✅ API key saved to config file")
	fmt.Println("   ⚠️  Consider using the keychain for better security")
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func keychainLocation() string {
	switch runtime.GOOS {
	case "darwin":
		return "Keychain Access"
	case "windows":
		return "Credential Manager"
	default:
		return "Secret Service (libsecret)"
	}
}
