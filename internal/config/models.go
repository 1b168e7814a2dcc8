package config

import "time"

// LLMConfig holds the semantic analyst provider selection
type LLMConfig struct {
	Provider string
}

// BedrockConfig holds Amazon Bedrock specific configuration
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// GeminiConfig holds Google Gemini specific configuration
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// OpenAIConfig holds OpenAI specific configuration
type OpenAIConfig struct {
	APIKey         string
	ModelName      string
	EmbeddingModel string
	MaxTokens      int
	Temperature    float64
	TopP           float64
	MaxBodySize    int
}

// EnrichmentConfig holds domain reputation probing configuration
type EnrichmentConfig struct {
	WhoisTimeout    time.Duration
	ProbeTimeout    time.Duration
	FollowRedirects bool
}

// GetLLM returns the semantic analyst configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: c.GetFloat64("bedrock.temperature"),
		TopP:        c.GetFloat64("bedrock.top_p"),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: c.GetFloat64("gemini.temperature"),
		TopP:        c.GetFloat64("gemini.top_p"),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:         c.GetString("openai.api_key"),
		ModelName:      c.GetString("openai.model_name"),
		EmbeddingModel: c.GetString("openai.embedding_model"),
		MaxTokens:      c.GetInt("openai.max_tokens"),
		Temperature:    c.GetFloat64("openai.temperature"),
		TopP:           c.GetFloat64("openai.top_p"),
		MaxBodySize:    c.GetInt("openai.max_body_size"),
	}
}

// GetEnrichment returns the domain reputation probing configuration
func (c *Config) GetEnrichment() EnrichmentConfig {
	whoisTimeout, err := c.GetDuration("enrichment.whois_timeout")
	if err != nil {
		whoisTimeout = 5 * time.Second
	}
	probeTimeout, err := c.GetDuration("enrichment.probe_timeout")
	if err != nil {
		probeTimeout = 3 * time.Second
	}
	return EnrichmentConfig{
		WhoisTimeout:    whoisTimeout,
		ProbeTimeout:    probeTimeout,
		FollowRedirects: c.GetBool("enrichment.follow_redirects"),
	}
}
