package main

import (
	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
)

func newSeedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, schedules, leave and attendance history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if migrate || a.cfg.Database.AutoMigrate {
				m, err := a.migrator()
				if err != nil {
					return err
				}
				if err := m.Up(); err != nil {
					return err
				}
			}

			seeder := fixtures.NewSeeder(
				postgresql.NewTxManager(a.db),
				postgresql.NewUserRepository(a.db),
				postgresql.NewScheduleRepository(a.db),
				postgresql.NewAttendanceRepository(a.db),
				postgresql.NewLeaveRequestRepository(a.db),
				a.cfg.Location(),
			)
			result, err := seeder.Run(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("seeded %d employees, %d leave requests, %d attendance records\n",
				result.EmployeesCreated, result.LeavesCreated, result.AttendanceCreated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations first")
	return cmd
}
