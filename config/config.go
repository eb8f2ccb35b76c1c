package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("FUI_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("FUI_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("FUI_LISTEN")
	if listen == "" {
		listen = "0.0.0.0"
	}
	return listen
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("FUI_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

// GetBasePath returns the URL prefix for all API routes, always with
// leading and trailing slashes.
func GetBasePath() string {
	basePath := os.Getenv("FUI_BASE_PATH")
	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("FUI_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/finanzas-ui"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("FUI_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetSessionSecret returns the secret used to authenticate session
// cookies and sign API tokens. Empty means generate one at startup.
func GetSessionSecret() string {
	return os.Getenv("FUI_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("FUI_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 60
	}
	return maxAge
}

func GetWebDomain() string {
	return os.Getenv("FUI_WEB_DOMAIN")
}
