package config

type AppConfig struct {
	Run  RunConfig
	Host HostConfig
	Log  LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	runCfg, err := LoadRun()
	if err != nil {
		return AppConfig{}, err
	}
	hostCfg, err := LoadHost()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Run:  runCfg,
		Host: hostCfg,
		Log:  logCfg,
	}, nil
}
