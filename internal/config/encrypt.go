package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rowjay/bell-schedule/internal/cryptoutil"
)

// EncryptConfigFile seals inputPath into outputPath so Load can read it with
// BELLS_CONFIG_KEY. The output keeps the input's format extension plus ".enc"
// when outputPath is empty.
func EncryptConfigFile(inputPath, outputPath, key string) error {
	if outputPath == "" {
		outputPath = inputPath + ".enc"
	}
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return fmt.Errorf("refusing to overwrite %s with its encrypted form", inputPath)
	}
	if !isEncryptedPath(outputPath) {
		return fmt.Errorf("encrypted config %s must end in .enc or .encrypted", outputPath)
	}
	plain, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	parsed, err := cryptoutil.ParseKey(key)
	if err != nil {
		return err
	}
	sealed, err := cryptoutil.EncryptConfig(plain, parsed)
	if err != nil {
		return fmt.Errorf("encrypt config: %w", err)
	}
	return os.WriteFile(outputPath, sealed, 0o600)
}
