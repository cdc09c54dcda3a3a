package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser   m.User
	TestUserSeeker1 m.User
	TestUserSeeker2 m.User
	TestUserFinder1 m.User
	TestUserFinder2 m.User

	TestAdminProfile m.Profile
	TestSeeker1      m.Profile
	TestSeeker2      m.Profile
	TestFinder1      m.Profile
	TestFinder2      m.Profile

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// TestAdminEmail is the email seeded for the admin user; tests build their
	// allow-list around it.
	TestAdminEmail = "admin@campusconnect.test"

	// Exported seeded jobs
	TestJobApproved m.Job
	TestJobPending  m.Job
	TestJobFilled   m.Job
	TestJobDraft    m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample seekers, finders, admin and jobs
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users, profiles and jobs if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	emails := []string{
		"seeker1@campusconnect.test",
		"seeker2@campusconnect.test",
		"finder1@campusconnect.test",
		"finder2@campusconnect.test",
		TestAdminEmail,
	}
	userSpecs := []struct {
		username string
		email    string
	}{
		{"seeker_student_1", emails[0]},
		{"seeker_student_2", emails[1]},
		{"finder_student_1", emails[2]},
		{"finder_student_2", emails[3]},
		{"admin_user", emails[4]},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for i := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: userSpecs[i].username,
			Email:    &userSpecs[i].email,
			Password: hashedPwd,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "seeker_student_1":
			TestUserSeeker1 = u
		case "seeker_student_2":
			TestUserSeeker2 = u
		case "finder_student_1":
			TestUserFinder1 = u
		case "finder_student_2":
			TestUserFinder2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	profiles := []m.Profile{
		{
			ID:     uuid.New(),
			UserID: TestUserSeeker1.ID,
			Email:  emails[0],
			Role:   m.RoleSeeker,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:   "Alice Nguyen",
				Department: "Computer Science",
				Year:       "Junior (3rd Year)",
				Skills:     pq.StringArray{"Go", "SQL"},
				Interests:  pq.StringArray{"Backend", "Databases"},
			},
		},
		{
			ID:     uuid.New(),
			UserID: TestUserSeeker2.ID,
			Email:  emails[1],
			Role:   m.RoleSeeker,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:   "Bob Somsak",
				Department: "Design",
				Year:       "Sophomore (2nd Year)",
				Skills:     pq.StringArray{"Figma", "UI/UX"},
				Interests:  pq.StringArray{"Design Systems"},
			},
		},
		{
			ID:     uuid.New(),
			UserID: TestUserFinder1.ID,
			Email:  emails[2],
			Role:   m.RoleFinder,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:   "Carol Diaz",
				Department: "Business",
				Year:       "Senior (4th Year)",
				Skills:     pq.StringArray{"Product"},
				Interests:  pq.StringArray{"Startups"},
			},
		},
		{
			ID:     uuid.New(),
			UserID: TestUserFinder2.ID,
			Email:  emails[3],
			Role:   m.RoleFinder,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:   "Dan Okafor",
				Department: "Engineering",
				Year:       "Graduate Student",
				Skills:     pq.StringArray{"Robotics"},
				Interests:  pq.StringArray{"Competitions"},
			},
		},
		{
			ID:     uuid.New(),
			UserID: TestAdminUser.ID,
			Email:  emails[4],
			Role:   m.RoleFinder,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:  "System Administrator",
				Skills:    pq.StringArray{"Moderation"},
				Interests: pq.StringArray{"Everything"},
			},
		},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}

	TestSeeker1 = profiles[0]
	TestSeeker2 = profiles[1]
	TestFinder1 = profiles[2]
	TestFinder2 = profiles[3]
	TestAdminProfile = profiles[4]

	jobs := []m.Job{
		{
			CreatedByID: TestFinder1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Backend Engineer for Campus App",
				Type:        m.JobTypePartTime,
				Description: "Build Go services for the campus marketplace.",
				Tags:        pq.StringArray{"go", "backend"},
			},
			Status:      m.JobStatusApproved,
			IsPublished: true,
		},
		{
			CreatedByID: TestFinder1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Research Assistant, NLP Lab",
				Type:        m.JobTypeAcademicProject,
				Description: "Assist with dataset curation and evaluation.",
				Tags:        pq.StringArray{"research", "ai"},
			},
			Status:      m.JobStatusPending,
			IsPublished: true,
		},
		{
			CreatedByID: TestFinder2.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Hackathon Teammate",
				Type:        m.JobTypeCompetitionHackathon,
				Description: "Join our team for the spring hackathon.",
				Tags:        pq.StringArray{"hackathon"},
			},
			Status:      m.JobStatusApproved,
			IsPublished: true,
			IsFilled:    true,
		},
		{
			CreatedByID: TestFinder2.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Startup Co-founder Search",
				Type:        m.JobTypeStartupCollaboration,
				Description: "Draft posting, not visible yet.",
				Tags:        pq.StringArray{"startup"},
			},
			Status:      m.JobStatusPending,
			IsPublished: false,
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}

	TestJobApproved = jobs[0]
	TestJobPending = jobs[1]
	TestJobFilled = jobs[2]
	TestJobDraft = jobs[3]

	return nil
}

// loadTestData re-reads the seeded fixtures into the exported variables when
// the container database already holds them.
func loadTestData(db *DBinstanceStruct) error {
	type fixture struct {
		username string
		user     *m.User
		profile  *m.Profile
	}
	fixtures := []fixture{
		{"seeker_student_1", &TestUserSeeker1, &TestSeeker1},
		{"seeker_student_2", &TestUserSeeker2, &TestSeeker2},
		{"finder_student_1", &TestUserFinder1, &TestFinder1},
		{"finder_student_2", &TestUserFinder2, &TestFinder2},
		{"admin_user", &TestAdminUser, &TestAdminProfile},
	}
	for _, f := range fixtures {
		if err := db.Where("username = ?", f.username).First(f.user).Error; err != nil {
			return err
		}
		if err := db.Where("user_id = ?", f.user.ID).First(f.profile).Error; err != nil {
			return err
		}
	}

	jobFixtures := []struct {
		title string
		job   *m.Job
	}{
		{"Backend Engineer for Campus App", &TestJobApproved},
		{"Research Assistant, NLP Lab", &TestJobPending},
		{"Hackathon Teammate", &TestJobFilled},
		{"Startup Co-founder Search", &TestJobDraft},
	}
	for _, f := range jobFixtures {
		if err := db.Where("title = ?", f.title).First(f.job).Error; err != nil {
			return err
		}
	}
	return nil
}
