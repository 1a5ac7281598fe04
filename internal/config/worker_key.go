package config

type WorkerKeyStruct struct {
	LeaderboardEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	LeaderboardEventsQueue: "leaderboard_events_queue",
}
