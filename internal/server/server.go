package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/repository"
)

// Server owns the fiber application and its wiring.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds the HTTP server: auth components from injected configuration,
// controllers over the repositories, and the route table. Public reads stay
// outside the token verifier; everything mutating or privileged sits behind
// it.
func New(cfg *config.Config, repos repository.Manager, logger auth.Logger) *Server {
	if logger == nil {
		logger = noopLogger{}
	}

	hasher := auth.NewHasher(cfg.Auth.GetBcryptCost())
	tokens := auth.NewTokenService(
		[]byte(cfg.Auth.GetSigningKey()),
		cfg.Auth.GetTokenExpiration(),
		cfg.Auth.GetIssuer(),
		logger,
	)

	accounts := NewAccounts(repos.Users(), hasher, tokens, logger)

	contextKey := cfg.Auth.GetContextKey()
	cookies := newSessionCookies(
		contextKey,
		time.Duration(cfg.Auth.GetTokenExpiration())*time.Hour,
		!cfg.IsLocal(),
	)

	app := fiber.New(fiber.Config{
		AppName:      "inkpost",
		ErrorHandler: NewErrorHandler(logger),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	})

	protected := auth.Protected(auth.MiddlewareConfig{
		Validator:  tokens,
		ContextKey: contextKey,
		Logger:     logger,
	})

	authCtrl := NewAuthController(accounts, cookies, logger)
	userCtrl := NewUserController(accounts, repos.Users(), cookies, contextKey, logger)
	postCtrl := NewPostController(repos.Posts(), contextKey, logger)
	commentCtrl := NewCommentController(repos.Comments(), contextKey, logger)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authCtrl.Signup)
	authGroup.Post("/signin", authCtrl.Signin)
	authGroup.Post("/google", authCtrl.Google)

	user := api.Group("/user")
	user.Put("/update/:userId", protected, userCtrl.Update)
	user.Delete("/delete/:userId", protected, userCtrl.Delete)
	user.Post("/signout", userCtrl.Signout)
	user.Get("/getusers", protected, userCtrl.GetUsers)
	user.Get("/:userId", userCtrl.GetUser)

	post := api.Group("/post")
	post.Post("/create", protected, postCtrl.Create)
	post.Get("/getposts", postCtrl.GetPosts)
	post.Put("/update/:postId/:userId", protected, postCtrl.Update)
	post.Delete("/delete/:postId/:userId", protected, postCtrl.Delete)

	comment := api.Group("/comment")
	comment.Post("/create", protected, commentCtrl.Create)
	comment.Get("/getPostComments/:postId", commentCtrl.GetPostComments)
	comment.Get("/getcomments", protected, commentCtrl.GetComments)
	comment.Put("/like/:commentId", protected, commentCtrl.Like)
	comment.Put("/edit/:commentId", protected, commentCtrl.Edit)
	comment.Delete("/delete/:commentId", protected, commentCtrl.Delete)

	return &Server{app: app, cfg: cfg}
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.HTTPServer.Address)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
