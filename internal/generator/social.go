package generator

import (
	"fmt"
	"strings"
	"time"

	"skrbl-automation-platform/internal/domain/model"
)

// Request describes one social content generation call.
type Request struct {
	BusinessName    string   `json:"businessName"`
	Industry        string   `json:"industry"`
	Platforms       []string `json:"platforms"`
	Tone            string   `json:"tone,omitempty"`
	Topic           string   `json:"topic,omitempty"`
	IncludeHashtags bool     `json:"includeHashtags"`
	PostCount       int      `json:"postCount,omitempty"`
}

const (
	defaultPostCount = 3
	maxPostCount     = 10
)

// Normalize applies defaults and bounds in place.
func (r *Request) Normalize() {
	if r.PostCount <= 0 {
		r.PostCount = defaultPostCount
	}
	if r.PostCount > maxPostCount {
		r.PostCount = maxPostCount
	}
	if r.Tone == "" {
		r.Tone = defaultTone
	}
	for i, p := range r.Platforms {
		r.Platforms[i] = strings.ToLower(strings.TrimSpace(p))
	}
}

// Generate produces exactly one PlatformPosts entry per requested platform,
// each holding exactly PostCount posts shaped for that platform. Pure and
// deterministic apart from the posting-time stamps.
func Generate(req Request, now time.Time) []model.PlatformPosts {
	req.Normalize()

	out := make([]model.PlatformPosts, 0, len(req.Platforms))
	for _, platform := range req.Platforms {
		posts := make([]model.SocialPost, 0, req.PostCount)
		for i := 0; i < req.PostCount; i++ {
			posts = append(posts, buildPost(req, platform, i, now))
		}
		out = append(out, model.PlatformPosts{Platform: platform, Posts: posts})
	}
	return out
}

func buildPost(req Request, platform string, idx int, now time.Time) model.SocialPost {
	text := composeText(req, idx)

	var tags []string
	if req.IncludeHashtags {
		tags = Hashtags(req.BusinessName, req.Industry, req.Topic)
		text = text + " " + strings.Join(tags, " ")
	}

	postAt := postingTime(platform, now)
	post := model.SocialPost{PostAt: &postAt, Hashtags: tags}

	switch platform {
	case "instagram":
		post.Caption = text
		post.ImageIdea = imageIdea(req, idx)
	case "pinterest":
		post.Title = pinTitle(req, idx)
		post.Description = text
	default:
		// twitter, tiktok, linkedin, facebook and anything unknown get a plain
		// content body.
		post.Content = text
	}
	return post
}

func composeText(req Request, idx int) string {
	t, ok := tones[req.Tone]
	if !ok {
		t = tones[defaultTone]
	}

	subject := req.Industry
	if req.Topic != "" {
		subject = req.Topic
	}

	intro := fmt.Sprintf(t.Intros[idx%len(t.Intros)], req.BusinessName, subject)
	body := t.Bodies[idx%len(t.Bodies)]
	cta := t.CTAs[idx%len(t.CTAs)]
	return intro + " " + body + " " + cta
}

func pinTitle(req Request, idx int) string {
	subject := req.Industry
	if req.Topic != "" {
		subject = req.Topic
	}
	titles := []string{
		"%s: fresh ideas for %s",
		"How %s does %s right",
		"%s's guide to %s",
	}
	return fmt.Sprintf(titles[idx%len(titles)], req.BusinessName, subject)
}

func imageIdea(req Request, idx int) string {
	ideas := []string{
		"Behind-the-scenes shot of the %s team at work",
		"Clean flat-lay themed around %s",
		"Customer spotlight photo featuring a %s success story",
	}
	subject := req.Industry
	if idx == 0 {
		subject = req.BusinessName
	}
	return fmt.Sprintf(ideas[idx%len(ideas)], subject)
}

// Hashtags derives a small tag set from the business name, industry, and
// topic. Tokens are lowercased and stripped of spaces.
func Hashtags(business, industry, topic string) []string {
	seen := map[string]bool{}
	var tags []string
	add := func(s string) {
		s = strings.ToLower(strings.Join(strings.Fields(s), ""))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		tags = append(tags, "#"+s)
	}
	add(business)
	add(industry)
	add(topic)
	add("smallbusiness")
	add("growth")
	return tags
}

func postingTime(platform string, now time.Time) time.Time {
	off, ok := recommendedHourOffset[platform]
	if !ok {
		off = 12
	}
	return now.Add(time.Duration(off) * time.Hour)
}

// EnrichmentPrompt builds the single bounded AI prompt used to rewrite a draft
// post for one platform.
func EnrichmentPrompt(req Request, platform, draft string) string {
	return fmt.Sprintf(
		"Rewrite the following %s post for %s (a %s business) in a %s tone. Keep it under 80 words and keep any hashtags.\n\n%s",
		platform, req.BusinessName, req.Industry, req.Tone, draft,
	)
}
