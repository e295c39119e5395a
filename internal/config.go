package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// InviteStrategy selects how the base invite roster is obtained.
type InviteStrategy string

const (
	// StrategyRoster invites a fixed, configured list of users.
	StrategyRoster InviteStrategy = "roster"
	// StrategyGroup invites the members of a configured Slack usergroup.
	StrategyGroup InviteStrategy = "group"
)

// Config holds everything the bot reads from the environment. It is built
// once at startup and passed into every component; nothing reads the
// environment after LoadConfig returns.
type Config struct {
	VerificationToken string
	BotToken          string
	UserToken         string
	InviteStrategy    InviteStrategy
	Roster            []string
	GroupID           string
	DocURL            string
	ServerPort        int
	ServerHost        string
	Environment       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		if os.Getenv("ENVIRONMENT") != "production" {
			fmt.Println("Warning: Error loading .env file:", err)
		}
	}

	config := &Config{
		VerificationToken: getEnv("SLACK_VERIFICATION_TOKEN", "", true),
		BotToken:          getEnv("INCIDENT_BOT_TOKEN", "", true),
		UserToken:         getEnv("SLACK_USER_TOKEN", "", true),
		InviteStrategy:    InviteStrategy(getEnv("INCIDENT_INVITE_STRATEGY", string(StrategyGroup), false)),
		Roster:            splitRoster(getEnv("INCIDENT_ROSTER", "", false)),
		GroupID:           getEnv("INCIDENT_GROUP_ID", "", false),
		DocURL:            getEnv("INCIDENT_DOC_URL", "", false),
		ServerPort:        getEnvAsInt("SERVER_PORT", 50051, false),
		ServerHost:        getEnv("SERVER_HOST", "0.0.0.0", false),
		Environment:       getEnv("ENVIRONMENT", "development", false),
	}

	switch config.InviteStrategy {
	case StrategyRoster, StrategyGroup:
	default:
		return nil, fmt.Errorf("unknown INCIDENT_INVITE_STRATEGY %q", config.InviteStrategy)
	}

	return config, nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// splitRoster parses a comma-separated list of user IDs, dropping empty
// entries and surrounding whitespace.
func splitRoster(value string) []string {
	var roster []string
	for _, id := range strings.Split(value, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			roster = append(roster, id)
		}
	}
	return roster
}

func getEnv(key, defaultValue string, required bool) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		if required {
			panic(fmt.Sprintf("Required environment variable %s is not set", key))
		}
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int, required bool) int {
	valueStr := getEnv(key, "", required)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		if required {
			panic(fmt.Sprintf("Environment variable %s must be an integer", key))
		}
		return defaultValue
	}
	return value
}
