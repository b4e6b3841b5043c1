package util

import (
	"os"
	"strings"
)

// Environment is a snapshot of the process environment
type Environment map[string]string

func GetEnvironmentVariables() Environment {
	environment := Environment{}

	for _, variable := range os.Environ() {
		if key, value, found := strings.Cut(variable, "="); found {
			environment[key] = value
		}
	}

	return environment
}

// Get returns the variable or fallback when it is unset or empty
func (e Environment) Get(key string, fallback string) string {
	if value := e[key]; value != "" {
		return value
	}

	return fallback
}
