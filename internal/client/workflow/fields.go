package workflow

// Field identifiers of the remote workflow's run schema. The mapping is an
// external contract owned by the workflow definition: treat this as a
// versioned constant table and update it when the remote schema changes.
const (
	fieldDocuments   = "doc_batch_64f2"
	fieldNotes       = "notes_1a77"
	fieldPriorities  = "priorities_8c3e"
	fieldRequestID   = "request_id_40b9"
	fieldCallbackURL = "callback_url_77d1"
	fieldProjectID   = "project_id_5b20"
)
