package conf

type Bootstrap struct {
	Env      string    `json:"env"`
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Research *Research `json:"research"`
	Log      *Log      `json:"log"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Data 缓存后端，database 与 redis 都未配置时关闭缓存
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int32  `json:"db"`
}

type Research struct {
	Llm           *LLM         `json:"llm"`
	Providers     []*Provider  `json:"providers"`
	Concurrency   *Concurrency `json:"concurrency"`
	QueryTimeout  string       `json:"query_timeout"`
	LlmTimeout    string       `json:"llm_timeout"`
	MaxResults    int32        `json:"max_results"`
	FetchFullText bool         `json:"fetch_full_text"`
	StagesFile    string       `json:"stages_file"`
}

type LLM struct {
	Provider           string  `json:"provider"` // openai / gemini
	BaseUrl            string  `json:"base_url"`
	ApiKey             string  `json:"api_key"`
	Model              string  `json:"model"`
	Temperature        *float32 `json:"temperature"`
	EnhanceMaxTokens   int32   `json:"enhance_max_tokens"`
	StructureMaxTokens int32   `json:"structure_max_tokens"`
}

// Provider 检索服务，api_key（searxng 为 base_url）为空时视为未配置
type Provider struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	ApiKey       string `json:"api_key"`
	BaseUrl      string `json:"base_url"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
	MaxTokens    int32  `json:"max_tokens"`
	Timeout      int32  `json:"timeout"`
}

type Concurrency struct {
	Qps        int32 `json:"qps"`
	Rpm        int32 `json:"rpm"`
	MaxQueries int32 `json:"max_queries"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
