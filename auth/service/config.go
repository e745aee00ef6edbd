package service

type Config struct {
	Backend        string        `toml:"backend"`
	SqliteFile     string        `toml:"sqlite_file"`
	Token          string        `toml:"token"`
	Expiration     string        `toml:"expiration"`
	PasswordPepper string        `toml:"password_pepper"`
	Storage        StorageConfig `toml:"db"`
}

type StorageConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	DBName   string `toml:"dbname"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}
