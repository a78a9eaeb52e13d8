package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "repo-visualizer",
			Version: "0.0.1",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "repo_visualizer",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:        "",
			RepoApiUrl:         "https://api.github.com/repos/{user}/{repo}",
			CommitsApiUrl:      "https://api.github.com/repos/{user}/{repo}/commits",
			BranchesApiUrl:     "https://api.github.com/repos/{user}/{repo}/branches",
			ContributorsApiUrl: "https://api.github.com/repos/{user}/{repo}/contributors",
			LanguagesApiUrl:    "https://api.github.com/repos/{user}/{repo}/languages",
			RequestsPerSecond:  10,
			ThrottleDelay:      200,
			RateLimitResetMin:  5,
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{"127.0.0.1:9092"},
			Producer: KafkaProducer{
				TopicRepo:        "viz.repo",
				TopicCommit:      "viz.commit",
				TopicBranch:      "viz.branch",
				TopicContributor: "viz.contributor",
				TopicLanguage:    "viz.language",
			},
		},

		// Viz
		Viz: Viz{
			HelixRadius:    8,
			CommitsPerLoop: 12,
			HelixPitch:     3,
			StartHeight:    -6,
			FramesPerSec:   30,
		},

		// Server
		Server: Server{
			Port: 8080,
		},
	}, nil
}
