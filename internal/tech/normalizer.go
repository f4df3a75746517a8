package tech

import "strings"

// aliases maps free-text technology names, already lower-cased and stripped
// of whitespace and a trailing ".js", to their canonical keys.
var aliases = map[string]string{
	"react.js":        "react",
	"reactjs":         "react",
	"react":           "react",
	"next.js":         "nextjs",
	"nextjs":          "nextjs",
	"next":            "nextjs",
	"vue.js":          "vuejs",
	"vuejs":           "vuejs",
	"vue":             "vuejs",
	"express.js":      "express",
	"expressjs":       "express",
	"express":         "express",
	"node.js":         "nodejs",
	"nodejs":          "nodejs",
	"node":            "nodejs",
	"mongodb":         "mongodb",
	"mongo":           "mongodb",
	"mongoose":        "mongoose",
	"mysql":           "mysql",
	"postgresql":      "postgresql",
	"sqlite":          "sqlite",
	"firebase":        "firebase",
	"docker":          "docker",
	"kubernetes":      "kubernetes",
	"aws":             "aws",
	"azure":           "azure",
	"gcp":             "gcp",
	"digitalocean":    "digitalocean",
	"heroku":          "heroku",
	"photoshop":       "photoshop",
	"adobephotoshop":  "photoshop",
	"html5":           "html5",
	"html":            "html5",
	"css3":            "css3",
	"css":             "css3",
	"sass":            "sass",
	"scss":            "sass",
	"less":            "less",
	"tailwindcss":     "tailwindcss",
	"tailwind":        "tailwindcss",
	"bootstrap":       "bootstrap",
	"jquery":          "jquery",
	"typescript":      "typescript",
	"ts":              "typescript",
	"javascript":      "javascript",
	"js":              "javascript",
	"angular.js":      "angular",
	"angularjs":       "angular",
	"angular":         "angular",
	"ember.js":        "ember",
	"emberjs":         "ember",
	"ember":           "ember",
	"backbone.js":     "backbone",
	"backbonejs":      "backbone",
	"backbone":        "backbone",
	"nestjs":          "nestjs",
	"graphql":         "graphql",
	"apollo":          "apollo",
	"webpack":         "webpack",
	"babel":           "babel",
	"rollup.js":       "rollup",
	"rollupjs":        "rollup",
	"rollup":          "rollup",
	"parcel.js":       "parcel",
	"parceljs":        "parcel",
	"npm":             "npm",
	"yarn":            "yarn",
	"git":             "git",
	"github":          "github",
	"gitlab":          "gitlab",
	"bitbucket":       "bitbucket",
	"figma":           "figma",
	"prisma":          "prisma",
	"redux":           "redux",
	"flux":            "flux",
	"redis":           "redis",
	"selenium":        "selenium",
	"cypress":         "cypress",
	"jest":            "jest",
	"mocha":           "mocha",
	"chai":            "chai",
	"karma":           "karma",
	"vuex":            "vuex",
	"nuxt.js":         "nuxt",
	"nuxtjs":          "nuxt",
	"nuxt":            "nuxt",
	"strapi":          "strapi",
	"wordpress":       "wordpress",
	"contentful":      "contentful",
	"netlify":         "netlify",
	"vercel":          "vercel",
	"awsamplify":      "amplify",
}

var docLinks = map[string]string{
	"react":        "https://react.dev/",
	"nextjs":       "https://nextjs.org/docs",
	"vuejs":        "https://vuejs.org/",
	"express":      "https://expressjs.com/",
	"nodejs":       "https://nodejs.org/en/docs",
	"mongodb":      "https://www.mongodb.com/docs/",
	"mongoose":     "https://mongoosejs.com/docs/",
	"mysql":        "https://dev.mysql.com/doc/",
	"postgresql":   "https://www.postgresql.org/docs/",
	"sqlite":       "https://www.sqlite.org/docs.html",
	"firebase":     "https://firebase.google.com/docs",
	"docker":       "https://docs.docker.com/",
	"kubernetes":   "https://kubernetes.io/docs/",
	"aws":          "https://docs.aws.amazon.com/",
	"azure":        "https://learn.microsoft.com/en-us/azure/",
	"gcp":          "https://cloud.google.com/docs",
	"digitalocean": "https://docs.digitalocean.com/",
	"heroku":       "https://devcenter.heroku.com/",
	"photoshop":    "https://helpx.adobe.com/photoshop/user-guide.html",
	"html5":        "https://developer.mozilla.org/en-US/docs/Web/HTML",
	"css3":         "https://developer.mozilla.org/en-US/docs/Web/CSS",
	"sass":         "https://sass-lang.com/documentation/",
	"tailwindcss":  "https://tailwindcss.com/docs",
	"bootstrap":    "https://getbootstrap.com/docs/",
	"jquery":       "https://api.jquery.com/",
	"typescript":   "https://www.typescriptlang.org/docs/",
	"javascript":   "https://developer.mozilla.org/en-US/docs/Web/JavaScript",
	"angular":      "https://angular.io/docs",
	"ember":        "https://guides.emberjs.com/",
	"backbone":     "https://backbonejs.org/",
	"nestjs":       "https://docs.nestjs.com/",
	"graphql":      "https://graphql.org/learn/",
	"apollo":       "https://www.apollographql.com/docs/",
	"webpack":      "https://webpack.js.org/concepts/",
	"babel":        "https://babeljs.io/docs/en/",
	"rollup":       "https://rollupjs.org/",
	"parcel":       "https://parceljs.org/docs/",
	"npm":          "https://docs.npmjs.com/",
	"yarn":         "https://classic.yarnpkg.com/en/docs/",
	"git":          "https://git-scm.com/doc",
	"github":       "https://docs.github.com/en",
	"gitlab":       "https://docs.gitlab.com/",
	"bitbucket":    "https://support.atlassian.com/bitbucket-cloud/docs/",
	"figma":        "https://help.figma.com/hc/en-us",
	"prisma":       "https://www.prisma.io/docs",
	"redux":        "https://redux.js.org/introduction/getting-started",
	"flux":         "https://facebook.github.io/flux/docs/in-depth-overview/",
	"redis":        "https://redis.io/docs/",
	"selenium":     "https://www.selenium.dev/documentation/",
	"cypress":      "https://docs.cypress.io/",
	"jest":         "https://jestjs.io/docs/getting-started",
	"mocha":        "https://mochajs.org/",
	"chai":         "https://www.chaijs.com/guide/",
	"karma":        "https://karma-runner.github.io/latest/index.html",
	"vuex":         "https://vuex.vuejs.org/",
	"nuxt":         "https://nuxt.com/docs",
	"strapi":       "https://docs.strapi.io/",
	"wordpress":    "https://developer.wordpress.org/",
	"contentful":   "https://www.contentful.com/developers/docs/",
	"netlify":      "https://docs.netlify.com/",
	"vercel":       "https://vercel.com/docs",
	"amplify":      "https://docs.amplify.aws/",
}

const iconBaseURL = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons"

// PlaceholderIcon is served when a technology has no canonical key.
const PlaceholderIcon = "/tech.svg"

// Normalize maps a free-text technology name to its canonical key. The
// empty string means unknown; callers fall back to placeholders, it is
// never an error.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, ".js")
	key = strings.Join(strings.Fields(key), "")
	return aliases[key]
}

// DocLink resolves a canonical key to its documentation URL, "#" when absent.
func DocLink(key string) string {
	if link, ok := docLinks[key]; ok {
		return link
	}
	return "#"
}

// IconURL builds the devicon CDN URL for a canonical key.
func IconURL(key string) string {
	if key == "" {
		return PlaceholderIcon
	}
	return iconBaseURL + "/" + key + "/" + key + "-original.svg"
}

type Logo struct {
	Tech string
	URL  string
	Doc  string
}

// Logos resolves each raw stack entry to its icon and doc link, keeping the
// caller's order and falling back to placeholders for unknown names.
func Logos(stack []string) []Logo {
	logos := make([]Logo, 0, len(stack))
	for _, raw := range stack {
		key := Normalize(raw)
		logos = append(logos, Logo{
			Tech: raw,
			URL:  IconURL(key),
			Doc:  DocLink(key),
		})
	}
	return logos
}
