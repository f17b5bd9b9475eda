package season

import "context"

// Repository stores the append-only season history and patch notes.
type Repository interface {
	Append(ctx context.Context, h History) error
	List(ctx context.Context) ([]History, error)
	GetBySeason(ctx context.Context, seasonNum int) (History, bool, error)
	SavePatchNotes(ctx context.Context, notes PatchNotes) error
	PatchNotesBySeason(ctx context.Context, seasonNum int) (PatchNotes, bool, error)
}

// NewsRepository stores the rolling league news feed.
type NewsRepository interface {
	Publish(ctx context.Context, line string) error
	Latest(ctx context.Context, n int) ([]string, error)
}
