package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one harvest run.
	FieldRunID = "run_id"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldChannelID is the YouTube channel being read.
	FieldChannelID = "channel_id"
	// FieldPlaylistID is the uploads playlist being paged.
	FieldPlaylistID = "playlist_id"
	// FieldVideoID is a single catalog video.
	FieldVideoID = "video_id"
	// FieldDescriptionIndex is the position of a description within the batch.
	FieldDescriptionIndex = "description_index"
	// FieldStrategy is the extraction strategy chosen for a description.
	FieldStrategy = "strategy"
	// FieldPath is a file system path being read or written.
	FieldPath = "path"
)
