package server

import (
	"net/http"

	apperr "github.com/apylist/apylist/internal/errors"
	"github.com/gin-gonic/gin"
)

type landingContent struct {
	Hero         heroContent      `json:"hero"`
	Features     []featureContent `json:"features"`
	Testimonials []testimonial    `json:"testimonials"`
	FAQ          []faqEntry       `json:"faq"`
}

type heroContent struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Bullets  []string `json:"bullets"`
}

type featureContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type testimonial struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Quote string `json:"quote"`
}

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var landing = landingContent{
	Hero: heroContent{
		Title:    "Find the Best APY Rates Instantly",
		Subtitle: "Our AI-driven platform helps you find the highest Annual Percentage Yields across financial institutions, tailored just for you.",
		Bullets: []string{
			"Find the Best APY Rates from trusted financial platforms in real-time.",
			"AI-Powered Recommendations personalized to your savings and investment goals.",
			"Track APY Trends and get insights to maximize your returns.",
			"Get Instant Notifications when new high-yield APY offers become available.",
			"Compare Across Multiple Platforms, including banks, crypto, and more, with ease.",
		},
	},
	Features: []featureContent{
		{Title: "AI-Powered APY Search", Body: "Our AI scours the web in real time to find the top Annual Percentage Yields from trusted financial platforms. The database is continuously updated, so you get the most accurate and up-to-date information without spending hours searching manually."},
		{Title: "Personalized Filtering", Body: "An intelligent filtering system lets you customize your search based on your preferences, whether you are looking for specific platforms, terms, or account types such as crypto or savings."},
		{Title: "Get Real-Time Alerts", Body: "Once you set your preferences, we notify you whenever top APY offers that match your criteria become available, helping you maximize your returns effortlessly."},
	},
	Testimonials: []testimonial{
		{Name: "John D.", Role: "Crypto Investor", Quote: "I used to spend hours looking for the best crypto APYs. Now I get personalized recommendations, and I have already boosted my returns by 15%."},
		{Name: "Sarah K.", Role: "Finance Enthusiast", Quote: "I set up my filters for the best traditional savings accounts, and now I get instant alerts when new offers come up. It is saving me so much time!"},
		{Name: "Michael B.", Role: "Entrepreneur", Quote: "The AI-powered alerts have been invaluable. I no longer have to manually search for APY offers. This tool does it all for me."},
	},
	FAQ: []faqEntry{
		{Question: "How does APY List use AI to find the best APY rates?", Answer: "Our AI analyzes APY rates from various sources in real-time, delivering personalized recommendations based on your preferences."},
		{Question: "How often is the data updated?", Answer: "The data is updated continuously, ensuring you have the most up-to-date information."},
		{Question: "Is APY List free to use?", Answer: "Yes, the platform is free to browse and sign up for. Premium features will be available soon."},
		{Question: "Can I receive personalized alerts for the best rates?", Answer: "Yes, our AI-powered notifications will keep you informed when top deals match your criteria."},
	},
}

type legalPage struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

var legalPages = map[string]legalPage{
	"tos": {
		Title: "Terms of Service",
		Paragraphs: []string{
			"By accessing this site you agree to use the yield directory for informational purposes only.",
			"Listed rates are sourced from third parties and are not investment advice. Always verify terms with the provider before depositing funds.",
			"We may change or discontinue any part of the service at any time without notice.",
		},
	},
	"privacy-policy": {
		Title: "Privacy Policy",
		Paragraphs: []string{
			"We store only the preferences you choose (such as your view mode and cookie choice) and the email address you submit to the waitlist.",
			"We do not sell personal data. Aggregate, anonymized usage statistics may be used to improve the service.",
			"You can clear stored preferences at any time through your browser or by contacting us.",
		},
	},
}

func (s *Server) handleLandingContent(c *gin.Context) {
	s.respond(c, http.StatusOK, landing, "")
}

func (s *Server) handleLegalContent(c *gin.Context) {
	page, ok := legalPages[c.Param("page")]
	if !ok {
		s.respondError(c, http.StatusNotFound, apperr.New(apperr.CodeNotFound, "page not found"))
		return
	}
	s.respond(c, http.StatusOK, page, "")
}
