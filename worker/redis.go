package worker

import (
	"fmt"

	"lexeme.io/postag/tasks"
)

type redisTransactions interface {
	getChunkTask(redisKey string) (*tasks.ChunkTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	err := wrapper.tasksClient.Chunks.Update(task.redisKey, func(task *tasks.ChunkTask) {
		task.TaskStatuses.HPT.Status = tasks.TaskStatusStarted
		task.TaskStatuses.HPT.Attempts += 1
		task.TaskStatuses.HPT.StartedAt = getFormattedNow()
		task.TaskStatuses.HPT.CompletedAt = nil
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	err := wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.HPT.Status = tasks.TaskStatusCanceled
		chunkTask.TaskStatuses.HPT.StartedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.Attempts += 1
		chunkTask.TaskStatuses.HPT.ErrorMessages = append(
			chunkTask.TaskStatuses.HPT.ErrorMessages,
			errorMessages...,
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.HPT.Status = tasks.TaskStatusCompletedFailure
		chunkTask.TaskStatuses.HPT.StartedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.Attempts += 1
		chunkTask.TaskStatuses.HPT.ErrorMessages = append(
			chunkTask.TaskStatuses.HPT.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				chunkTask.TaskStatuses.HPT.Attempts,
				maxRetries,
			),
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.HPT.Status = tasks.TaskStatusFailed
		chunkTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.ErrorMessages = append(chunkTask.TaskStatuses.HPT.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		if !chunkTask.TaskStatuses.HPT.Status.Complete() {
			chunkTask.TaskStatuses.HPT.Status = tasks.TaskStatusCompletedSuccess
		}
		chunkTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.HPT.ResultsFileKey = getResultsFileKey(task)
		chunkTask.TaskStatuses.HPT.ModelChecksum = task.modelChecksum
	})
}

func (wrapper *redisClientWrapper) getChunkTask(redisKey string) (*tasks.ChunkTask, error) {
	return wrapper.tasksClient.Chunks.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(task.chunkTask.JobID)
}
