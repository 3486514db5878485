package tasks

import (
	"fmt"

	"lexeme.io/postag/redis"
)

type Client struct {
	Chunks ChunkTasks
	Jobs   JobTasks
}

// NewClient is a preferred way for working with TaskInfos
func NewClient() (Client, error) {
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	chunksRedisClient, err := redis.NewClient(ChunksDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Jobs:   JobTasks{client: jobsRedisClient},
		Chunks: ChunkTasks{client: chunksRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Chunks.client.Close()
	_ = client.Jobs.client.Close()
}

func cachedPropertiesKey(redisKey string) string {
	return fmt.Sprintf("%s-cached-properties", redisKey)
}
