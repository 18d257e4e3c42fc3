package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"os"
)

// 載入.env檔，已存在的環境變數不會被覆蓋
func LoadEnvFile(filename string) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		return errors.Wrapf(err, "load %s", filename)
	}
	return nil
}
