package model

// User is the profile document stored under users/{uid}.
type User struct {
	UID          string `json:"uid" firestore:"uid"`
	Email        string `json:"email" firestore:"email"`
	Username     string `json:"username" firestore:"username"`
	ProfilePhoto string `json:"profile_photo" firestore:"profilePhoto"`
}

// WatchlistEntry marks a movie as saved for later, keyed by (uid, movieId).
type WatchlistEntry struct {
	MovieID   string `json:"movie_id" firestore:"movieId"`
	IsAdded   bool   `json:"is_added" firestore:"isAdded"`
	MovieName string `json:"movie_name" firestore:"movieName"`
	ImagePath string `json:"image_path" firestore:"imagePath"`
}

// WatchedEntry is a WatchlistEntry plus the user's rating (0-5).
type WatchedEntry struct {
	MovieID   string  `json:"movie_id" firestore:"movieId"`
	IsAdded   bool    `json:"is_added" firestore:"isAdded"`
	MovieName string  `json:"movie_name" firestore:"movieName"`
	ImagePath string  `json:"image_path" firestore:"imagePath"`
	Rating    float64 `json:"rating" firestore:"rating"`
}

// Comment lives in the shared per-movie collection comments/{movieId}/comment/{uid}.
// One document per user per movie.
type Comment struct {
	Comment    string  `json:"comment" firestore:"comment"`
	Username   string  `json:"username" firestore:"username"`
	Rating     float64 `json:"rating" firestore:"rating"`
	UID        string  `json:"uid" firestore:"uid"`
	ProfilePic string  `json:"profile_pic" firestore:"profilePic"`
}

// UserComment is the denormalized copy of a Comment kept under
// users/{uid}/usercomment/{movieId}, carrying movie metadata so the
// "my comments" screen renders without a catalog round-trip.
type UserComment struct {
	Comment    string  `json:"comment" firestore:"comment"`
	Rating     float64 `json:"rating" firestore:"rating"`
	MovieID    int     `json:"movie_id" firestore:"movieID"`
	MovieName  string  `json:"movie_name" firestore:"movieName"`
	PosterPath string  `json:"poster_path" firestore:"posterPath"`
	UID        string  `json:"uid" firestore:"uid"`
}
