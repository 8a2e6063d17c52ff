package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultName        = "Weather_Agent"
	DefaultDescription = "Provides current weather conditions for any city using the Weatherbit API."
	DefaultTemperature = 0.7
)

// DefaultInstruction is the system instruction handed to the hosted model.
const DefaultInstruction = `You are a friendly and precise weather assistant. Your primary purpose is to provide current weather information for any location using the Weatherbit API.

**Your Workflow:**

1.  **Be Conversational:** Always be polite. If a user greets you, greet them back before doing anything else and ask them what location's weather they would like to know.
2.  **Use Your Tool:** When a user asks for the weather, you MUST use the ` + "`" + WeatherToolName + "`" + ` tool to fetch the information. Pass the location they ask for directly to the tool.
3.  **Present the Data:** When you get the data back from the tool, present it to the user in a clear, easy-to-read format.
4.  **Handle Errors:** If the tool returns an error (e.g., city not found, API key issue), politely inform the user about the error and suggest a solution, like checking the spelling of the city.
5.  **Handle Off-Topic Questions:** If the user asks about something other than the weather, use your general knowledge to provide a helpful response, and then gently ask if they would like a weather update for a specific location.`

// Descriptor is the static declaration the hosted runtime consumes.
type Descriptor struct {
	Model       string  `mapstructure:"model" validate:"required"`
	Name        string  `mapstructure:"name" validate:"required"`
	Description string  `mapstructure:"description"`
	Instruction string  `mapstructure:"instruction" validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

func DefaultDescriptor() Descriptor {
	return Descriptor{
		Model:       DefaultModel,
		Name:        DefaultName,
		Description: DefaultDescription,
		Instruction: DefaultInstruction,
		Temperature: DefaultTemperature,
	}
}

var validate = validator.New()

// Validate checks the descriptor's required fields and bounds.
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid agent descriptor: %w", err)
	}
	return nil
}

// LoadDescriptor overlays an optional agent.yaml found in dir and
// WEATHER_AGENT_* environment variables on top of DefaultDescriptor.
func LoadDescriptor(dir string) (Descriptor, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("agent")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("WEATHER_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultDescriptor()
	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("model", d.Model)
	v.SetDefault("name", d.Name)
	v.SetDefault("description", d.Description)
	v.SetDefault("instruction", d.Instruction)
	v.SetDefault("temperature", d.Temperature)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Descriptor{}, fmt.Errorf("read agent config: %w", err)
		}
		log.Debug().Str("dir", dir).Msg("agent.yaml not found, using defaults and env")
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("loaded agent config")
	}

	if err := v.Unmarshal(&d); err != nil {
		return Descriptor{}, fmt.Errorf("decode agent config: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}
