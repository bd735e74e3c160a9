package config

// Host 為空時不連線，強制刷新節流也隨之關閉
type Redis struct {
	Host     string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port     int    `mapstructure:"PORT" json:"port" yaml:"port"`
	Password string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB       int    `mapstructure:"DB" json:"db" yaml:"db"`
}
