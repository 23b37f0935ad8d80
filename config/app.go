package config

const (
	ModeReal = "real"
	ModeMock = "mock"
)

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// Mode real: 读写数据库; mock: 返回固定数据（无数据库的部署环境）
	Mode string `json:"mode" yaml:"mode"`
	// PublicBaseURL 媒体文件对外访问前缀
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
}
