package questionbank

// Built-in topic banks. Quiz questions are multiple choice with a single
// correct index; interview questions are open-ended with the discussion
// points a strong answer is expected to touch, and a two-minute limit each.

var quizBanks = map[string][]bankQuestion{
	"frontend-basics": {
		{Prompt: "What does HTML stand for?", Category: "HTML", Choices: []string{"Hyper Text Markup Language", "High Tech Modern Language", "Home Tool Markup Language", "Hyperlinks and Text Markup Language"}, Correct: 0},
		{Prompt: "Which CSS property controls the text size?", Category: "CSS", Choices: []string{"font-size", "text-size", "font-style", "text-style"}, Correct: 0},
		{Prompt: "Which JavaScript keyword declares a block-scoped variable?", Category: "JavaScript", Choices: []string{"var", "let", "const", "function"}, Correct: 1},
		{Prompt: "What is the correct syntax for referring to an external script?", Category: "HTML", Choices: []string{"<script href=\"app.js\">", "<script name=\"app.js\">", "<script src=\"app.js\">", "<script file=\"app.js\">"}, Correct: 2},
		{Prompt: "Which HTML tag is used to define an internal style sheet?", Category: "HTML", Choices: []string{"<style>", "<css>", "<script>", "<styles>"}, Correct: 0},
		{Prompt: "Which property is used to change the background color?", Category: "CSS", Choices: []string{"color", "background-color", "bgcolor", "bg-color"}, Correct: 1},
		{Prompt: "How do you create a function in JavaScript?", Category: "JavaScript", Choices: []string{"function myFunction()", "function:myFunction()", "function = myFunction()", "def myFunction()"}, Correct: 0},
		{Prompt: "Which operator is used to assign a value to a variable?", Category: "JavaScript", Choices: []string{"*", "=", "-", "x"}, Correct: 1},
		{Prompt: "What is the correct way to write a JavaScript array?", Category: "JavaScript", Choices: []string{"var colors = \"red\", \"green\", \"blue\"", "var colors = (1:\"red\", 2:\"green\", 3:\"blue\")", "var colors = [\"red\", \"green\", \"blue\"]", "var colors = 1 = \"red\", 2 = \"green\", 3 = \"blue\""}, Correct: 2},
		{Prompt: "Which event occurs when the user clicks on an HTML element?", Category: "JavaScript", Choices: []string{"onchange", "onclick", "onmouseclick", "onmouseover"}, Correct: 1},
	},
	"backend-basics": {
		{Prompt: "What does SQL stand for?", Category: "Databases", Choices: []string{"Structured Query Language", "Simple Question Language", "Strong Query Language", "Structured Question Language"}, Correct: 0},
		{Prompt: "Which HTTP method is used to retrieve data?", Category: "HTTP", Choices: []string{"POST", "GET", "PUT", "DELETE"}, Correct: 1},
		{Prompt: "What is the default port for HTTPS?", Category: "Networking", Choices: []string{"80", "443", "8080", "3000"}, Correct: 1},
		{Prompt: "Which status code indicates a successful HTTP request?", Category: "HTTP", Choices: []string{"404", "500", "200", "301"}, Correct: 2},
		{Prompt: "What does REST stand for?", Category: "API", Choices: []string{"Representational State Transfer", "Remote State Transfer", "Reliable State Transfer", "Resource State Transfer"}, Correct: 0},
		{Prompt: "Which database is a NoSQL database?", Category: "Databases", Choices: []string{"MySQL", "PostgreSQL", "MongoDB", "SQLite"}, Correct: 2},
		{Prompt: "What is the purpose of an API?", Category: "API", Choices: []string{"To store data", "To allow applications to communicate", "To style websites", "To compile code"}, Correct: 1},
		{Prompt: "Which HTTP header is used for authentication?", Category: "HTTP", Choices: []string{"Content-Type", "Authorization", "Accept", "User-Agent"}, Correct: 1},
		{Prompt: "What does ORM stand for?", Category: "Databases", Choices: []string{"Object Resource Management", "Object Relational Mapping", "Online Resource Manager", "Operational Resource Model"}, Correct: 1},
		{Prompt: "Which method is idempotent in REST?", Category: "API", Choices: []string{"POST", "GET", "PATCH", "All of the above"}, Correct: 1},
	},
	"algorithms": {
		{Prompt: "What is the time complexity of binary search?", Category: "Complexity", Choices: []string{"O(n)", "O(log n)", "O(n^2)", "O(1)"}, Correct: 1},
		{Prompt: "Which data structure uses LIFO?", Category: "Data Structures", Choices: []string{"Queue", "Stack", "Tree", "Graph"}, Correct: 1},
		{Prompt: "What is the worst-case time complexity of quicksort?", Category: "Complexity", Choices: []string{"O(n log n)", "O(n)", "O(n^2)", "O(log n)"}, Correct: 2},
		{Prompt: "Which algorithm is used for finding the shortest path?", Category: "Graph", Choices: []string{"Bubble Sort", "Dijkstra", "Binary Search", "Merge Sort"}, Correct: 1},
		{Prompt: "What does BFS stand for?", Category: "Graph", Choices: []string{"Best First Search", "Breadth First Search", "Binary File System", "Bounded First Search"}, Correct: 1},
		{Prompt: "Which data structure is used in BFS?", Category: "Graph", Choices: []string{"Stack", "Queue", "Tree", "Heap"}, Correct: 1},
		{Prompt: "What is the space complexity of recursion?", Category: "Complexity", Choices: []string{"O(1)", "O(n)", "O(log n)", "O(n^2)"}, Correct: 1},
		{Prompt: "Which sorting algorithm is stable?", Category: "Sorting", Choices: []string{"Quicksort", "Heapsort", "Merge Sort", "Selection Sort"}, Correct: 2},
		{Prompt: "What is the average time complexity of a hash table lookup?", Category: "Data Structures", Choices: []string{"O(n)", "O(log n)", "O(1)", "O(n^2)"}, Correct: 2},
		{Prompt: "Which tree is always balanced?", Category: "Data Structures", Choices: []string{"Binary Search Tree", "AVL Tree", "Binary Tree", "N-ary Tree"}, Correct: 1},
	},
}

var interviewBanks = map[string][]bankQuestion{
	"frontend-basics": {
		{Prompt: "Explain the difference between let, const, and var in JavaScript.", Category: "JavaScript", ExpectedPoints: []string{"block scope", "hoisting", "reassignment"}, TimeLimitSec: 120},
		{Prompt: "What is the Virtual DOM and how does it work in React?", Category: "React", ExpectedPoints: []string{"diffing algorithm", "performance", "reconciliation"}, TimeLimitSec: 120},
		{Prompt: "Describe the CSS Box Model.", Category: "CSS", ExpectedPoints: []string{"content", "padding", "border", "margin"}, TimeLimitSec: 120},
		{Prompt: "What are React Hooks and why were they introduced?", Category: "React", ExpectedPoints: []string{"state", "lifecycle", "functional components"}, TimeLimitSec: 120},
		{Prompt: "Explain event delegation in JavaScript.", Category: "JavaScript", ExpectedPoints: []string{"bubbling", "event target", "performance"}, TimeLimitSec: 120},
		{Prompt: "What is the purpose of the useEffect hook?", Category: "React", ExpectedPoints: []string{"side effects", "dependencies", "cleanup"}, TimeLimitSec: 120},
		{Prompt: "Describe different ways to center a div in CSS.", Category: "CSS", ExpectedPoints: []string{"flexbox", "grid", "position"}, TimeLimitSec: 120},
		{Prompt: "What is the difference between == and === in JavaScript?", Category: "JavaScript", ExpectedPoints: []string{"type coercion", "strict equality"}, TimeLimitSec: 120},
	},
	"backend-basics": {
		{Prompt: "Explain the difference between SQL and NoSQL databases.", Category: "Databases", ExpectedPoints: []string{"schema", "scalability", "use cases"}, TimeLimitSec: 120},
		{Prompt: "What is RESTful API design?", Category: "API", ExpectedPoints: []string{"HTTP methods", "stateless", "resources"}, TimeLimitSec: 120},
		{Prompt: "Describe the concept of middleware in web frameworks.", Category: "Architecture", ExpectedPoints: []string{"request/response", "chain", "cross-cutting concerns"}, TimeLimitSec: 120},
		{Prompt: "What is database indexing and why is it important?", Category: "Databases", ExpectedPoints: []string{"performance", "query optimization", "trade-offs"}, TimeLimitSec: 120},
		{Prompt: "Explain authentication vs authorization.", Category: "Security", ExpectedPoints: []string{"identity", "permissions", "tokens"}, TimeLimitSec: 120},
	},
	"algorithms": {
		{Prompt: "Explain the difference between O(n) and O(log n) time complexity with examples.", Category: "Complexity", ExpectedPoints: []string{"linear", "logarithmic", "examples"}, TimeLimitSec: 120},
		{Prompt: "Describe how a hash table works.", Category: "Data Structures", ExpectedPoints: []string{"hashing", "collisions", "lookup time"}, TimeLimitSec: 120},
		{Prompt: "What is the difference between BFS and DFS?", Category: "Graph", ExpectedPoints: []string{"queue", "stack", "use cases"}, TimeLimitSec: 120},
		{Prompt: "Explain dynamic programming with an example.", Category: "Techniques", ExpectedPoints: []string{"memoization", "optimal substructure", "example"}, TimeLimitSec: 120},
		{Prompt: "Describe the binary search algorithm.", Category: "Search", ExpectedPoints: []string{"sorted array", "divide and conquer", "complexity"}, TimeLimitSec: 120},
	},
	"system-design": {
		{Prompt: "How would you design a URL shortening service?", Category: "Design", ExpectedPoints: []string{"hashing", "storage", "redirects", "scale"}, TimeLimitSec: 180},
		{Prompt: "Explain horizontal vs vertical scaling.", Category: "Scaling", ExpectedPoints: []string{"adding machines", "bigger machines", "trade-offs"}, TimeLimitSec: 120},
		{Prompt: "What is a load balancer and when do you need one?", Category: "Infrastructure", ExpectedPoints: []string{"traffic distribution", "health checks", "availability"}, TimeLimitSec: 120},
		{Prompt: "Describe how you would add caching to a read-heavy API.", Category: "Caching", ExpectedPoints: []string{"cache placement", "invalidation", "TTL"}, TimeLimitSec: 150},
		{Prompt: "Explain the CAP theorem.", Category: "Theory", ExpectedPoints: []string{"consistency", "availability", "partition tolerance"}, TimeLimitSec: 120},
	},
	"behavioral": {
		{Prompt: "Tell me about yourself.", Category: "General", ExpectedPoints: []string{"background", "relevant experience", "motivation"}, TimeLimitSec: 120},
		{Prompt: "Describe a challenging project you worked on.", Category: "Experience", ExpectedPoints: []string{"situation", "actions", "outcome"}, TimeLimitSec: 120},
		{Prompt: "What are your greatest strengths?", Category: "General", ExpectedPoints: []string{"concrete strengths", "examples"}, TimeLimitSec: 120},
		{Prompt: "Tell me about a time you disagreed with a teammate.", Category: "Teamwork", ExpectedPoints: []string{"conflict", "resolution", "learning"}, TimeLimitSec: 120},
		{Prompt: "Where do you see yourself in five years?", Category: "General", ExpectedPoints: []string{"growth", "realistic goals"}, TimeLimitSec: 120},
	},
}
