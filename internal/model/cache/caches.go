package cache

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// PerformanceRecords caches fully-composed performance reports, keyed by
	// the serialized query context.
	PerformanceRecords *cache.Set[[]*model.PerformanceRecord]

	Experiments    *cache.Singular[[]*model.Experiment]
	ExperimentByID *cache.Set[model.Experiment]

	ComparisonTaskByID  *cache.Set[model.ComparisonTask]
	SingleVideoTaskByID *cache.Set[model.SingleVideoTask]

	Videos *cache.Singular[[]*model.Video]

	LastModifiedTime *cache.Set[time.Time]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Populate(client)
		initializeCaches()
	})
}

func Delete(name string, key null.String) error {
	if key.Valid {
		if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	} else {
		if _, ok := SingularFlusherMap[name]; ok {
			if err := SingularFlusherMap[name](); err != nil {
				return err
			}
		} else if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	}
	return nil
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// performance
	PerformanceRecords = cache.NewSet[[]*model.PerformanceRecord]("performanceRecords#query")

	SetMap["performanceRecords#query"] = PerformanceRecords.Flush

	// experiment
	Experiments = cache.NewSingular[[]*model.Experiment]("experiments")
	ExperimentByID = cache.NewSet[model.Experiment]("experiment#experimentId")

	SingularFlusherMap["experiments"] = Experiments.Delete
	SetMap["experiment#experimentId"] = ExperimentByID.Flush

	// task
	ComparisonTaskByID = cache.NewSet[model.ComparisonTask]("comparisonTask#taskId")
	SingleVideoTaskByID = cache.NewSet[model.SingleVideoTask]("singleVideoTask#taskId")

	SetMap["comparisonTask#taskId"] = ComparisonTaskByID.Flush
	SetMap["singleVideoTask#taskId"] = SingleVideoTaskByID.Flush

	// video
	Videos = cache.NewSingular[[]*model.Video]("videos")

	SingularFlusherMap["videos"] = Videos.Delete

	// others
	LastModifiedTime = cache.NewSet[time.Time]("lastModifiedTime#key")

	SetMap["lastModifiedTime#key"] = LastModifiedTime.Flush
}
