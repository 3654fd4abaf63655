package router

import (
	"campdir/internal/application"
	"campdir/internal/container"
	"campdir/internal/infrastructure/postgres"
	handlers "campdir/internal/interface/http"
	"campdir/internal/router/modules"
	"campdir/pkg/geocoder"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetPGPool()

	bootcampRepo := postgres.NewBootcampRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	userRepo := postgres.NewUserRepository(db)

	agg := application.NewAggregates(bootcampRepo, courseRepo, reviewRepo, logger)
	geo := geocoder.New(cfg.GeocoderURL, cfg.GeocoderKey, container.GetRedis())

	bootcampSvc := &application.BootcampService{
		Repo:      bootcampRepo,
		Geocoder:  geo,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		MaxUpload: cfg.MaxFileUpload,
		ES:        container.GetES(),
		ESIndex:   cfg.ESBootcampsIndex,
		Logger:    logger,
	}
	courseSvc := &application.CourseService{Courses: courseRepo, Bootcamps: bootcampRepo, Agg: agg}
	reviewSvc := &application.ReviewService{Reviews: reviewRepo, Bootcamps: bootcampRepo, Agg: agg}
	authSvc := &application.AuthService{
		Users:    userRepo,
		JWT:      container.GetJWT(),
		Emails:   container.GetRabbitPub(),
		ResetTTL: cfg.ResetTokenTTL,
		ResetURL: cfg.ResetURL,
		Logger:   logger,
	}
	userSvc := &application.UserService{Users: userRepo}

	bootcampHandler := handlers.NewBootcampHandler(bootcampSvc)
	courseHandler := handlers.NewCourseHandler(courseSvc)
	reviewHandler := handlers.NewReviewHandler(reviewSvc)
	authHandler := handlers.NewAuthHandler(authSvc, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc)

	jwt := container.GetJWT()
	r.Add(modules.NewBootcampModule(bootcampHandler, courseHandler, reviewHandler, jwt))
	r.Add(modules.NewCourseModule(courseHandler, jwt))
	r.Add(modules.NewReviewModule(reviewHandler, jwt))
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
}
