package domain

const DefaultModel = "gpt-4o"

func DefaultConfig() SessionConfig {
	return SessionConfig{
		Model:           DefaultModel,
		Temperature:     0.7,
		TopP:            1.0,
		TopK:            0,
		MaxOutputTokens: 4096,
		ToolsDefinition: "[]",
	}
}

// SampleToolsDefinition is the starter content offered by the raw tools editor.
const SampleToolsDefinition = `[
  {
    "type": "function",
    "function": {
      "name": "get_weather",
      "description": "Get the current weather for a location",
      "parameters": {
        "type": "object",
        "properties": {
          "location": {
            "type": "string",
            "description": "The city and state, e.g. San Francisco, CA"
          },
          "unit": {
            "type": "string",
            "enum": ["celsius", "fahrenheit"]
          }
        },
        "required": ["location"]
      }
    }
  }
]`
