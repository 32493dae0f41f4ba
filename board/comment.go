package board

// Comment is a single post on the board.
type Comment struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	City     string `json:"city"`
	Language string `json:"language"`
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// NewComment is the input accepted by Store.Add.
type NewComment struct {
	Username string `json:"username" validate:"required"`
	City     string `json:"city" validate:"required"`
	Language string `json:"language" validate:"required"`
	Text     string `json:"text" validate:"required,boardtext"`
}

// DislikeOutcome reports the result of a dislike. When Removed is set the
// comment no longer exists and Dislikes is meaningless.
type DislikeOutcome struct {
	Dislikes int  `json:"dislikes,omitempty"`
	Removed  bool `json:"removed,omitempty"`
}
