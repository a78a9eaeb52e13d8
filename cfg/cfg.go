package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken        string
		RepoApiUrl         string
		CommitsApiUrl      string
		BranchesApiUrl     string
		ContributorsApiUrl string
		LanguagesApiUrl    string
		RequestsPerSecond  int
		ThrottleDelay      int
		RateLimitResetMin  int
	}

	KafkaProducer struct {
		TopicRepo        string
		TopicCommit      string
		TopicBranch      string
		TopicContributor string
		TopicLanguage    string
	}

	Kafka struct {
		Brokers  []string
		Producer KafkaProducer
	}

	// Viz chứa các tham số bố cục của scene 3D. Giá trị 0 sẽ dùng
	// mặc định trong internal/scene.
	Viz struct {
		HelixRadius    float64
		CommitsPerLoop int
		HelixPitch     float64
		StartHeight    float64
		FramesPerSec   int
	}

	Server struct {
		Port int
	}
)

type Config struct {
	App       App
	Mysql     Mysql
	GithubApi GithubApi
	Kafka     Kafka
	Viz       Viz
	Server    Server
}
