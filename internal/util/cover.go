package util

import "math/rand/v2"

var interviewCovers = []string{
	"/adobe.png",
	"/amazon.png",
	"/facebook.png",
	"/hostinger.png",
	"/pinterest.png",
	"/quora.png",
	"/reddit.png",
	"/skype.png",
	"/spotify.png",
	"/telegram.png",
	"/tiktok.png",
	"/yahoo.png",
}

// InterviewCover maps any index onto the fixed cover list.
func InterviewCover(i int) string {
	n := len(interviewCovers)
	return "/covers" + interviewCovers[((i%n)+n)%n]
}

func RandomInterviewCover() string {
	return InterviewCover(rand.IntN(len(interviewCovers)))
}

func InterviewCoverCount() int {
	return len(interviewCovers)
}
