package entity

// LikeStatus is the read-side view of a post's like state for one caller.
type LikeStatus struct {
	Likes               int64 `json:"likes"`
	IsLiked             bool  `json:"isLiked"`
	RemainingOperations int   `json:"remainingOperations"`
}

// LikeResult is returned after a state-changing (or no-op) like operation.
type LikeResult struct {
	Likes               int64  `json:"likes"`
	IsLiked             bool   `json:"isLiked"`
	RemainingOperations int    `json:"remainingOperations"`
	Changed             bool   `json:"-"`
	Message             string `json:"message"`
}
